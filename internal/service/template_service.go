package service

import (
	"alcyxob/gym-tracker/internal/domain"
	"context"
	"log/slog"
)

// TemplateService manages workout templates.
type TemplateService interface {
	CreateTemplate(ctx context.Context, draft domain.TemplateDraft) (*domain.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, templateID string) bool
	ListTemplates(ctx context.Context) []domain.WorkoutTemplate
}

// CreateTemplate stores a new template. Exercise ids that do not resolve are
// dropped; the template is rejected only if none remain.
func (t *Tracker) CreateTemplate(ctx context.Context, draft domain.TemplateDraft) (*domain.WorkoutTemplate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	exists := func(id string) bool {
		_, ok := t.exerciseByID(id)
		return ok
	}
	template, err := domain.NewTemplate(draft, exists, t.newID(), t.now())
	if err != nil {
		return nil, err
	}
	t.templates = append(t.templates, template)
	t.persist(ctx, dirtyTemplates)

	slog.Info("template created", "template_id", template.ID, "items", len(template.Items))
	out := template.Clone()
	return &out, nil
}

// DeleteTemplate removes a template. Sessions started from it are unaffected.
func (t *Tracker) DeleteTemplate(ctx context.Context, templateID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, tmpl := range t.templates {
		if tmpl.ID != templateID {
			continue
		}
		templates := make([]domain.WorkoutTemplate, 0, len(t.templates)-1)
		templates = append(templates, t.templates[:i]...)
		t.templates = append(templates, t.templates[i+1:]...)
		t.persist(ctx, dirtyTemplates)
		slog.Info("template deleted", "template_id", templateID)
		return true
	}
	slog.Debug("delete of unknown template ignored", "template_id", templateID)
	return false
}

// ListTemplates returns templates in creation order.
func (t *Tracker) ListTemplates(ctx context.Context) []domain.WorkoutTemplate {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.CloneTemplates(t.templates)
}
