package catalog

import (
	"modelwatch/lib/docstore"
)

// Store is the typed facade over the three catalog tables.
type Store struct {
	Models    docstore.Table[Model]
	Videos    docstore.Table[Video]
	Schedules docstore.Table[Schedule]
}

func NewStore(db *docstore.Store) Store {
	return Store{
		Models:    docstore.TableOf[Model](db, "models"),
		Videos:    docstore.TableOf[Video](db, "videos"),
		Schedules: docstore.TableOf[Schedule](db, "schedules"),
	}
}

func ModelNamed(name string) docstore.Predicate[Model] {
	return func(m Model) bool { return m.Name == name }
}

func VideosOf(model string) docstore.Predicate[Video] {
	return func(v Video) bool { return v.Model == model }
}

func scheduleHasEmail(email string) docstore.Predicate[Schedule] {
	return func(s Schedule) bool {
		for _, e := range s.Emails {
			if e == email {
				return true
			}
		}
		return false
	}
}

// AddModel registers a model unless one with the same name already
// exists, reporting whether a row was created. A freshly added model
// starts with the placeholder avatar until the first scrape.
func (s Store) AddModel(name, link string) (bool, error) {
	exists, err := s.Models.Contains(ModelNamed(name))
	if err != nil || exists {
		return false, err
	}
	err = s.Models.Insert(Model{Name: name, Link: link, Avatar: DefaultAvatar})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RemoveModel deletes a model by name, reporting whether anything was
// removed. Its videos stay behind until Cleanup runs against the new
// active set.
func (s Store) RemoveModel(name string) (bool, error) {
	removed, err := s.Models.Remove(ModelNamed(name))
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

// ActiveModels returns the model table keyed by name, the membership
// set Cleanup enforces against.
func (s Store) ActiveModels() (map[string]Model, error) {
	models, err := s.Models.All()
	if err != nil {
		return nil, err
	}
	active := make(map[string]Model, len(models))
	for _, m := range models {
		active[m.Name] = m
	}
	return active, nil
}
