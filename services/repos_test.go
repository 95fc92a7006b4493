package services

// In-memory repository fakes backing the service tests. They honor the
// same ErrNotFound contract as the Mongo implementations and interpret
// only the filters the services actually build.

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"project-manager/backend/models"
	"project-manager/backend/repositories"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	user := u
	return &user, nil
}

func (r *memUserRepo) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := user.ID
	if id.IsZero() {
		id = primitive.NewObjectID()
	}
	stored := *user
	stored.ID = id
	r.users[id] = stored
	return id, nil
}

func (r *memUserRepo) FindByRole(_ context.Context, role string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type memProjectRepo struct {
	mu       sync.Mutex
	projects map[primitive.ObjectID]models.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[primitive.ObjectID]models.Project)}
}

func (r *memProjectRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	project := p
	return &project, nil
}

func (r *memProjectRepo) Find(_ context.Context, filter bson.M) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Project
	for _, p := range r.projects {
		if owner, ok := filter["ownerId"]; ok && p.OwnerID != owner.(primitive.ObjectID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memProjectRepo) Insert(_ context.Context, project *models.Project) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := project.ID
	if id.IsZero() {
		id = primitive.NewObjectID()
	}
	stored := *project
	stored.ID = id
	r.projects[id] = stored
	return id, nil
}

func (r *memProjectRepo) UpdateByID(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			p.Name = value.(string)
		case "description":
			p.Description = value.(string)
		case "updatedAt":
			p.UpdatedAt = value.(time.Time)
		}
	}
	r.projects[id] = p
	return nil
}

func (r *memProjectRepo) RemoveByID(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[primitive.ObjectID]models.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[primitive.ObjectID]models.Task)}
}

func (r *memTaskRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	task := t
	return &task, nil
}

func (r *memTaskRepo) Find(_ context.Context, filter bson.M) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Task
	for _, t := range r.tasks {
		if matchTask(t, filter) {
			out = append(out, t)
		}
	}
	return out, nil
}

func matchTask(t models.Task, filter bson.M) bool {
	or, ok := filter["$or"]
	if !ok {
		return true
	}
	for _, clause := range or.([]bson.M) {
		if assignee, ok := clause["assigneeId"]; ok && t.AssigneeID == assignee.(primitive.ObjectID) {
			return true
		}
		if project, ok := clause["projectId"]; ok {
			for _, id := range project.(bson.M)["$in"].([]primitive.ObjectID) {
				if t.ProjectID == id {
					return true
				}
			}
		}
	}
	return false
}

func (r *memTaskRepo) Insert(_ context.Context, task *models.Task) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := task.ID
	if id.IsZero() {
		id = primitive.NewObjectID()
	}
	stored := *task
	stored.ID = id
	r.tasks[id] = stored
	return id, nil
}

func (r *memTaskRepo) UpdateByID(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "title":
			t.Title = value.(string)
		case "description":
			t.Description = value.(string)
		case "status":
			t.Status = value.(string)
		case "priority":
			t.Priority = value.(string)
		case "assigneeId":
			t.AssigneeID = value.(primitive.ObjectID)
		case "dueDate":
			due := value.(time.Time)
			t.DueDate = &due
		case "updatedAt":
			t.UpdatedAt = value.(time.Time)
		}
	}
	r.tasks[id] = t
	return nil
}

func (r *memTaskRepo) RemoveByID(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}
