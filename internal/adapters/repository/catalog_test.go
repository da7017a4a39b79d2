package repository_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/okian/hackstack/internal/adapters/repository"
	"github.com/okian/hackstack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("hackathon-%d", n)
	}
}

func submission(title string) model.Hackathon {
	return model.Hackathon{
		Title:        title,
		Description:  title + " description",
		Organizer:    "Test Org",
		Domain:       "AI",
		Level:        model.LevelBeginner,
		Mode:         model.ModeOnline,
		Status:       model.StatusOpen,
		DaysLeft:     14,
		Participants: 999,
		TeamSize:     model.TeamSize{Min: 1, Max: 4},
		TechStack:    []string{"Go"},
	}
}

type storeFactory func(t *testing.T) repository.Catalog

func memoryFactory(t *testing.T) repository.Catalog {
	return repository.NewMemoryStore(
		repository.WithClock(func() time.Time { return fixedNow }),
		repository.WithIDGenerator(sequentialIDs()),
	)
}

func sqliteFactory(t *testing.T) repository.Catalog {
	ctx := context.Background()
	db, err := repository.OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s, err := repository.NewSQLiteStore(ctx, db,
		repository.WithClock(func() time.Time { return fixedNow }),
		repository.WithIDGenerator(sequentialIDs()),
	)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	return s
}

func TestCatalogStores(t *testing.T) {
	for name, factory := range map[string]storeFactory{"memory": memoryFactory, "sqlite": sqliteFactory} {
		t.Run(name, func(t *testing.T) { runCatalogSuite(t, factory) })
	}
}

func runCatalogSuite(t *testing.T, newStore storeFactory) {
	ctx := context.Background()

	Convey("Given an empty catalog", t, func() {
		s := newStore(t)
		Reset(func() { _ = s.Close() })

		Convey("When a hackathon is created", func() {
			h, err := s.Create(ctx, submission("First"))
			So(err, ShouldBeNil)

			Convey("Then it gets an ID, zero participants and defaults", func() {
				So(h.ID, ShouldEqual, "hackathon-1")
				So(h.Participants, ShouldEqual, 0)
				So(h.Prize, ShouldEqual, model.DefaultPrize)
				So(h.StartDate, ShouldEqual, "2026-10-17")
			})

			Convey("Then Get returns the stored record", func() {
				got, err := s.Get(ctx, h.ID)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, h)
			})

			Convey("Then Count reflects it", func() {
				n, err := s.Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When several hackathons are created and seeded", func() {
			_, err := s.Create(ctx, submission("First"))
			So(err, ShouldBeNil)
			So(s.Seed(ctx, []model.Hackathon{
				{ID: "seed-a", Title: "Seed A", Description: "a", Organizer: "o", Domain: "Web", Participants: 50},
				{ID: "seed-b", Title: "Seed B", Description: "b", Organizer: "o", Domain: "IoT", Status: model.StatusEnded},
			}), ShouldBeNil)
			_, err = s.Create(ctx, submission("Second"))
			So(err, ShouldBeNil)

			Convey("Then List is newest first with seeds at the back in file order", func() {
				hs, err := s.List(ctx)
				So(err, ShouldBeNil)
				ids := make([]string, len(hs))
				for i := range hs {
					ids[i] = hs[i].ID
				}
				So(ids, ShouldResemble, []string{"hackathon-2", "hackathon-1", "seed-a", "seed-b"})
			})

			Convey("Then seeds keep their participants and ended seeds keep zero days", func() {
				a, err := s.Get(ctx, "seed-a")
				So(err, ShouldBeNil)
				So(a.Participants, ShouldEqual, 50)
				b, err := s.Get(ctx, "seed-b")
				So(err, ShouldBeNil)
				So(b.DaysLeft, ShouldEqual, 0)
				So(b.TechStack, ShouldResemble, []string{})
			})

			Convey("Then List snapshots are detached from the store", func() {
				hs, _ := s.List(ctx)
				hs[0].Title = "mutated"
				got, _ := s.Get(ctx, hs[0].ID)
				So(got.Title, ShouldEqual, "Second")
			})
		})

		Convey("When a submission is invalid", func() {
			bad := submission("")
			_, err := s.Create(ctx, bad)

			Convey("Then it is rejected and nothing is stored", func() {
				So(errors.Is(err, model.ErrInvalidHackathon), ShouldBeTrue)
				n, _ := s.Count(ctx)
				So(n, ShouldEqual, 0)
			})
		})

		Convey("When a hackathon is updated", func() {
			h, _ := s.Create(ctx, submission("First"))
			title := "Renamed"
			participants := 12
			out, err := s.Update(ctx, h.ID, model.HackathonPatch{
				Title:        &title,
				Participants: &participants,
				TechStack:    []string{"Rust", "Go"},
			})

			Convey("Then the patch is merged and persisted", func() {
				So(err, ShouldBeNil)
				So(out.Title, ShouldEqual, "Renamed")
				got, _ := s.Get(ctx, h.ID)
				So(got.Title, ShouldEqual, "Renamed")
				So(got.Participants, ShouldEqual, 12)
				So(got.TechStack, ShouldResemble, []string{"Rust", "Go"})
				So(got.Organizer, ShouldEqual, "Test Org")
			})

			Convey("Then an invalid patch leaves the record alone", func() {
				bad := model.TeamSize{Min: 9, Max: 1}
				_, err := s.Update(ctx, h.ID, model.HackathonPatch{TeamSize: &bad})
				So(errors.Is(err, model.ErrInvalidHackathon), ShouldBeTrue)
				got, _ := s.Get(ctx, h.ID)
				So(got.TeamSize, ShouldResemble, model.TeamSize{Min: 1, Max: 4})
			})
		})

		Convey("When a hackathon is deleted", func() {
			h, _ := s.Create(ctx, submission("First"))
			So(s.Delete(ctx, h.ID), ShouldBeNil)

			Convey("Then it is gone", func() {
				_, err := s.Get(ctx, h.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				hs, _ := s.List(ctx)
				So(hs, ShouldBeEmpty)
			})
		})

		Convey("When unknown IDs are used", func() {
			_, getErr := s.Get(ctx, "nope")
			_, updErr := s.Update(ctx, "nope", model.HackathonPatch{})
			delErr := s.Delete(ctx, "nope")

			Convey("Then every call reports not found", func() {
				So(errors.Is(getErr, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(updErr, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(delErr, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a seed batch repeats an ID", func() {
			err := s.Seed(ctx, []model.Hackathon{
				{ID: "dup", Title: "A", Description: "a", Organizer: "o", Domain: "AI"},
				{ID: "dup", Title: "B", Description: "b", Organizer: "o", Domain: "AI"},
			})

			Convey("Then the batch conflicts and stores nothing", func() {
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
				n, _ := s.Count(ctx)
				So(n, ShouldEqual, 0)
			})
		})

		Convey("When a seed record has no ID", func() {
			err := s.Seed(ctx, []model.Hackathon{{Title: "A", Description: "a", Organizer: "o", Domain: "AI"}})

			Convey("Then it is invalid", func() {
				So(errors.Is(err, model.ErrInvalidHackathon), ShouldBeTrue)
			})
		})

		Convey("When the demo catalog is seeded", func() {
			So(s.Seed(ctx, repository.DemoHackathons()), ShouldBeNil)

			Convey("Then every demo record is stored", func() {
				n, err := s.Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, len(repository.DemoHackathons()))
			})

			Convey("Then seeding it twice conflicts", func() {
				err := s.Seed(ctx, repository.DemoHackathons())
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})
		})
	})
}

func TestMemoryStoreConcurrency(t *testing.T) {
	Convey("Given concurrent writers and readers", t, func() {
		ctx := context.Background()
		s := repository.NewMemoryStore()
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				_, _ = s.Create(ctx, submission(fmt.Sprintf("Concurrent %d", i)))
			}(i)
			go func() {
				defer wg.Done()
				_, _ = s.List(ctx)
			}()
		}
		wg.Wait()

		Convey("Then every create lands with a unique uuid-based ID", func() {
			hs, err := s.List(ctx)
			So(err, ShouldBeNil)
			So(hs, ShouldHaveLength, 20)
			seen := map[string]bool{}
			for _, h := range hs {
				So(h.ID, ShouldStartWith, "hackathon-")
				So(seen[h.ID], ShouldBeFalse)
				seen[h.ID] = true
			}
		})
	})
}

func TestSQLiteStoreOnDisk(t *testing.T) {
	Convey("Given a SQLite file", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "catalog.db")

		db, err := repository.OpenSQLite(ctx, path)
		So(err, ShouldBeNil)
		s, err := repository.NewSQLiteStore(ctx, db)
		So(err, ShouldBeNil)
		created, err := s.Create(ctx, submission("Persisted"))
		So(err, ShouldBeNil)
		So(s.Close(), ShouldBeNil)

		Convey("When the store is reopened", func() {
			db, err := repository.OpenSQLite(ctx, path)
			So(err, ShouldBeNil)
			s, err := repository.NewSQLiteStore(ctx, db)
			So(err, ShouldBeNil)
			defer s.Close()

			Convey("Then the record survived", func() {
				got, err := s.Get(ctx, created.ID)
				So(err, ShouldBeNil)
				So(got.Title, ShouldEqual, "Persisted")
			})
		})
	})
}
