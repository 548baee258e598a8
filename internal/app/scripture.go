package app

import (
	"context"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// UpdateScripture updates an existing scripture entry by id, or inserts
// a new one stamped with the session subject as author. Moderation
// roles only.
//
// On update only title and content change; the original author and
// creation time are kept.
func (a *App) UpdateScripture(ctx context.Context, id, title, content string) (model.Scripture, error) {
	u, err := a.requireModerator()
	if err != nil {
		return model.Scripture{}, err
	}

	if id != "" {
		for i := range a.scriptures {
			if a.scriptures[i].ID == id {
				a.scriptures[i].Title = title
				a.scriptures[i].Content = content
				if err := a.persist(ctx, store.KeyScriptures); err != nil {
					return model.Scripture{}, err
				}
				return a.scriptures[i], nil
			}
		}
	}

	entry := model.Scripture{
		ID:        id,
		Title:     title,
		Content:   content,
		AuthorID:  u.ID,
		CreatedAt: a.clock.NowMillis(),
	}
	if entry.ID == "" {
		entry.ID = a.ids.NewID(idPrefixScripture)
	}
	a.scriptures = append(a.scriptures, entry)

	if err := a.persist(ctx, store.KeyScriptures); err != nil {
		return model.Scripture{}, err
	}
	return entry, nil
}
