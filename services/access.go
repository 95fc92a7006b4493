package services

import "project-manager/backend/models"

// canAccessProject decides whether the principal may read or mutate
// the project: admins always, everyone else only as owner.
func canAccessProject(project *models.Project, principal *models.Principal) bool {
	if principal == nil {
		return false
	}
	if principal.IsAdmin() {
		return true
	}
	return project.OwnerID == principal.ID
}
