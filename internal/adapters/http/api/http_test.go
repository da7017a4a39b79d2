package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/hackstack/internal/adapters/http/api"
	"github.com/okian/hackstack/internal/adapters/repository"
	service "github.com/okian/hackstack/internal/app"
	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/recommend"
	"github.com/okian/hackstack/internal/domain/search"
	"github.com/okian/hackstack/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newMux() *http.ServeMux {
	ctx := context.Background()
	svc := service.New()
	if err := svc.Seed(ctx, repository.DemoHackathons()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)
	return mux
}

func do(mux http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		panic(err)
	}
	return v
}

type searchBody struct {
	Stage string            `json:"stage"`
	Count int               `json:"count"`
	Items []model.Hackathon `json:"items"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const newHackathon = `{
	"title": "Rust Night",
	"description": "Systems programming sprint",
	"organizer": "Ferris Club",
	"domain": "Systems",
	"tech_stack": ["Rust"]
}`

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API over the demo catalog", t, func() {
		mux := newMux()

		Convey("Then health answers ok with a request id", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode[map[string]string](w)["status"], ShouldEqual, "ok")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})

		Convey("Then a caller's request id is echoed", func() {
			w := do(mux, http.MethodGet, "/healthz", "", api.RequestIDHeader, "req-1")
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "req-1")
		})

		Convey("Then metrics are exposed in Prometheus format", func() {
			do(mux, http.MethodGet, "/healthz", "")
			w := do(mux, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "hackstack_catalog_http_requests_total")
		})

		Convey("Then runtime stats are served", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode[map[string]any](w)["totalHackathons"], ShouldEqual, float64(len(repository.DemoHackathons())))
		})

		Convey("Then a wrong method is refused with Allow", func() {
			w := do(mux, http.MethodDelete, "/hackathons", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "GET, POST")
			So(decode[errorBody](w).Code, ShouldEqual, "method_not_allowed")
		})
	})
}

func TestHackathonsHandler_Search(t *testing.T) {
	Convey("Given the browse grid endpoint", t, func() {
		mux := newMux()

		Convey("When no filter is sent", func() {
			w := do(mux, http.MethodGet, "/hackathons", "")
			body := decode[searchBody](w)

			Convey("Then every hackathon is listed unfiltered", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Stage, ShouldEqual, string(search.StageUnfiltered))
				So(body.Count, ShouldEqual, len(repository.DemoHackathons()))
			})
		})

		Convey("When the domain and mode are selected", func() {
			w := do(mux, http.MethodGet, "/hackathons?domain=web&mode=online&status=all", "")
			body := decode[searchBody](w)

			Convey("Then the strict stage answers", func() {
				So(body.Stage, ShouldEqual, string(search.StageStrict))
				So(body.Count, ShouldEqual, 1)
				So(body.Items[0].ID, ShouldEqual, "green-web-challenge")
			})
		})

		Convey("When the query matches nothing", func() {
			w := do(mux, http.MethodGet, "/hackathons?q=zzz_nonexistent&domain=all&mode=all&level=all&status=all", "")
			body := decode[searchBody](w)

			Convey("Then the fallback returns the full catalog", func() {
				So(body.Stage, ShouldEqual, string(search.StageFallback))
				So(body.Count, ShouldEqual, len(repository.DemoHackathons()))
			})
		})
	})
}

func TestHackathonsHandler_CRUD(t *testing.T) {
	Convey("Given the hackathon endpoints", t, func() {
		mux := newMux()

		Convey("When a hackathon is posted", func() {
			w := do(mux, http.MethodPost, "/hackathons", newHackathon)
			created := decode[model.Hackathon](w)

			Convey("Then it is created with defaults and a location", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(created.ID, ShouldStartWith, "hackathon-")
				So(created.Level, ShouldEqual, model.LevelAll)
				So(w.Header().Get("Location"), ShouldEqual, "/hackathons/"+created.ID)
			})

			Convey("Then it can be read back", func() {
				r := do(mux, http.MethodGet, "/hackathons/"+created.ID, "")
				So(r.Code, ShouldEqual, http.StatusOK)
				So(decode[model.Hackathon](r), ShouldResemble, created)
			})

			Convey("Then it leads the grid", func() {
				body := decode[searchBody](do(mux, http.MethodGet, "/hackathons", ""))
				So(body.Items[0].ID, ShouldEqual, created.ID)
			})

			Convey("Then a partial update changes one field", func() {
				r := do(mux, http.MethodPut, "/hackathons/"+created.ID, `{"status":"closing-soon"}`)
				So(r.Code, ShouldEqual, http.StatusOK)
				updated := decode[model.Hackathon](r)
				So(updated.Status, ShouldEqual, model.StatusClosingSoon)
				So(updated.Title, ShouldEqual, created.Title)
			})

			Convey("Then it can be deleted once", func() {
				So(do(mux, http.MethodDelete, "/hackathons/"+created.ID, "").Code, ShouldEqual, http.StatusNoContent)
				So(do(mux, http.MethodDelete, "/hackathons/"+created.ID, "").Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the same Idempotency-Key is posted twice", func() {
			first := do(mux, http.MethodPost, "/hackathons", newHackathon, api.IdempotencyKeyHeader, "abc")
			second := do(mux, http.MethodPost, "/hackathons", newHackathon, api.IdempotencyKeyHeader, "abc")

			Convey("Then the second response replays the first record", func() {
				So(first.Code, ShouldEqual, http.StatusCreated)
				So(second.Code, ShouldEqual, http.StatusCreated)
				So(second.Header().Get(api.ReplayedHeader), ShouldEqual, "true")
				So(first.Header().Get(api.ReplayedHeader), ShouldBeEmpty)
				So(decode[model.Hackathon](second).ID, ShouldEqual, decode[model.Hackathon](first).ID)
			})
		})

		Convey("When the posted record is invalid", func() {
			w := do(mux, http.MethodPost, "/hackathons", `{"title":"No organizer","description":"x","domain":"AI"}`)

			Convey("Then it is rejected with a validation code", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode[errorBody](w).Code, ShouldEqual, "invalid_hackathon")
			})
		})

		Convey("When the body is malformed", func() {
			cases := []struct {
				name string
				body string
			}{
				{"broken JSON", `{"title":`},
				{"an unknown field", `{"title":"x","colour":"red"}`},
				{"two documents", `{} {}`},
			}
			for _, tc := range cases {
				Convey("Then "+tc.name+" is a bad request", func() {
					w := do(mux, http.MethodPost, "/hackathons", tc.body)
					So(w.Code, ShouldEqual, http.StatusBadRequest)
					So(decode[errorBody](w).Code, ShouldEqual, "bad_request")
				})
			}
		})

		Convey("When the content type is not JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/hackathons", strings.NewReader(newHackathon))
			req.Header.Set("Content-Type", "text/plain")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is refused", func() {
				So(w.Code, ShouldEqual, http.StatusUnsupportedMediaType)
			})
		})

		Convey("When an unknown id is read", func() {
			w := do(mux, http.MethodGet, "/hackathons/nope", "")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decode[errorBody](w).Code, ShouldEqual, "not_found")
			})
		})

		Convey("When the id is missing or nested", func() {
			So(do(mux, http.MethodGet, "/hackathons/", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, http.MethodGet, "/hackathons/a/b", "").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRecommendationHandler(t *testing.T) {
	Convey("Given the recommendation endpoint", t, func() {
		mux := newMux()

		Convey("When an AI profile is posted", func() {
			w := do(mux, http.MethodPost, "/recommendations", `{"skills":["AI"],"preferred_mode":"online"}`)
			var body struct {
				Stage string                 `json:"stage"`
				Items []model.Recommendation `json:"items"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then up to five ranked results come back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Stage, ShouldEqual, string(recommend.StagePrimary))
				So(body.Items, ShouldHaveLength, recommend.MaxResults)
				So(body.Items[0].ID, ShouldEqual, "ai-frontier-2026")
				So(body.Items[0].Reason, ShouldStartWith, "Matches your AI skills")
			})
		})

		Convey("When no skill is selected", func() {
			w := do(mux, http.MethodPost, "/recommendations", `{"skills":[]}`)

			Convey("Then the profile is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode[errorBody](w).Code, ShouldEqual, "invalid_profile")
			})
		})

		Convey("When the method is GET", func() {
			So(do(mux, http.MethodGet, "/recommendations", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestAdminHandler(t *testing.T) {
	Convey("Given the admin endpoints", t, func() {
		mux := newMux()

		Convey("When the table is searched", func() {
			w := do(mux, http.MethodGet, "/admin/hackathons?q=openmind", "")
			var body struct {
				Count int               `json:"count"`
				Items []model.Hackathon `json:"items"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then matches by organizer are listed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Count, ShouldEqual, 2)
			})
		})

		Convey("When nothing matches", func() {
			w := do(mux, http.MethodGet, "/admin/hackathons?q=zzz", "")

			Convey("Then an empty list is returned", func() {
				So(w.Body.String(), ShouldContainSubstring, `"items":[]`)
			})
		})

		Convey("When stats are requested", func() {
			w := do(mux, http.MethodGet, "/admin/stats", "")

			Convey("Then the catalog summary is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decode[model.CatalogStats](w), ShouldResemble, model.Summarize(repository.DemoHackathons()))
			})
		})
	})
}

// failingDeps fails every catalog call.
type failingDeps struct{}

var errBoom = errors.New("disk on fire")

func (failingDeps) Search(context.Context, search.Criteria) ([]model.Hackathon, search.Stage, error) {
	return nil, "", errBoom
}
func (failingDeps) Create(context.Context, model.Hackathon, string) (model.Hackathon, bool, error) {
	return model.Hackathon{}, false, errBoom
}
func (failingDeps) Get(context.Context, string) (model.Hackathon, error) {
	return model.Hackathon{}, errBoom
}
func (failingDeps) Update(context.Context, string, model.HackathonPatch) (model.Hackathon, error) {
	return model.Hackathon{}, errBoom
}
func (failingDeps) Delete(context.Context, string) error { return errBoom }
func (failingDeps) Recommend(context.Context, model.UserProfile) ([]model.Recommendation, recommend.Stage, error) {
	return nil, "", errBoom
}
func (failingDeps) AdminSearch(context.Context, string) ([]model.Hackathon, error) {
	return nil, errBoom
}
func (failingDeps) Stats(context.Context) (model.CatalogStats, error) {
	return model.CatalogStats{}, errBoom
}
func (failingDeps) GetStats() map[string]interface{} { return map[string]interface{}{} }

func TestServer_Failures(t *testing.T) {
	Convey("Given a server whose catalog fails", t, func() {
		mux := http.NewServeMux()
		api.NewServer(failingDeps{}).Register(context.Background(), mux)

		Convey("Then every route answers 500 with the operation name", func() {
			for _, tc := range []struct{ method, target, body string }{
				{http.MethodGet, "/hackathons", ""},
				{http.MethodPost, "/hackathons", newHackathon},
				{http.MethodGet, "/hackathons/x", ""},
				{http.MethodPost, "/recommendations", `{"skills":["AI"]}`},
				{http.MethodGet, "/admin/stats", ""},
			} {
				w := do(mux, tc.method, tc.target, tc.body)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				body := decode[errorBody](w)
				So(body.Code, ShouldEqual, "internal_error")
				So(body.Message, ShouldStartWith, "api.")
				So(body.Message, ShouldContainSubstring, errBoom.Error())
			}
		})
	})
}

func TestOpError(t *testing.T) {
	Convey("Given wrapped API errors", t, func() {
		cause := errors.New("eof")

		Convey("Then errors.Is sees both the kind and the cause", func() {
			err := api.WrapKind("api.op", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: eof")
		})

		Convey("Then NewKind and Wrap render their parts", func() {
			So(api.NewKind("api.op", api.ErrBadRequest).Error(), ShouldEqual, "api.op: bad request")
			So(api.Wrap("api.op", cause).Error(), ShouldEqual, "api.op: eof")
			So(api.Wrap("api.op", nil), ShouldBeNil)
		})
	})
}
