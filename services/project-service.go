package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"project-manager/backend/logging"
	"project-manager/backend/models"
	"project-manager/backend/repositories"
	"project-manager/backend/validation"
)

type CreateProjectInput struct {
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description" validate:"omitempty"`
}

// UpdateProjectInput accepts only the declared-mutable fields. The
// owner reference is fixed at creation and never mutable here.
type UpdateProjectInput struct {
	Name        *string `json:"name" validate:"omitempty,min=3"`
	Description *string `json:"description" validate:"omitempty"`
}

// ProjectService owns the projects collection. The caller's principal
// is an explicit argument on every operation.
type ProjectService struct {
	projects repositories.ProjectRepository
}

func NewProjectService(projects repositories.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// Create persists a project owned by the caller.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput, principal *models.Principal) (*models.Project, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     principal.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.projects.Insert(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	project.ID = id

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created by %s", project.ID.Hex(), principal.Email)
	return project, nil
}

// List returns every project for admins and only owned projects for
// everyone else.
func (s *ProjectService) List(ctx context.Context, principal *models.Principal) ([]models.Project, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}

	filter := bson.M{}
	if !principal.IsAdmin() {
		filter = bson.M{"ownerId": principal.ID}
	}

	projects, err := s.projects.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns the project after the existence check and the access
// check, in that order. A malformed id behaves as a missing project.
func (s *ProjectService) Get(ctx context.Context, id string, principal *models.Principal) (*models.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	project, err := s.projects.FindByID(ctx, objectID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	if !canAccessProject(project, principal) {
		return nil, ErrAccessDenied
	}
	return project, nil
}

// Update applies a partial merge of the mutable fields, stamps
// updatedAt and returns the refreshed record.
func (s *ProjectService) Update(ctx context.Context, id string, input UpdateProjectInput, principal *models.Principal) (*models.Project, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	project, err := s.Get(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	fields := bson.M{"updatedAt": time.Now().UTC()}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	if err := s.projects.UpdateByID(ctx, project.ID, fields); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	updated, err := s.projects.FindByID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated project: %w", err)
	}
	return updated, nil
}

// Remove deletes the project and returns its last observed state
// marked deleted. A second remove of the same id reports not found.
func (s *ProjectService) Remove(ctx context.Context, id string, principal *models.Principal) (*models.DeletedProject, error) {
	project, err := s.Get(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	if err := s.projects.RemoveByID(ctx, project.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted by %s", project.ID.Hex(), principal.Email)
	return &models.DeletedProject{Project: *project, Deleted: true}, nil
}
