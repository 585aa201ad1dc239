package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	agencydomain "github.com/abdouni493/auto-rental-application/internal/agency/domain"
	agencyservice "github.com/abdouni493/auto-rental-application/internal/agency/service"
	"github.com/abdouni493/auto-rental-application/internal/clock"
	"github.com/abdouni493/auto-rental-application/internal/config"
	customerdomain "github.com/abdouni493/auto-rental-application/internal/customer/domain"
	customerrepository "github.com/abdouni493/auto-rental-application/internal/customer/repository"
	customerservice "github.com/abdouni493/auto-rental-application/internal/customer/service"
	"github.com/abdouni493/auto-rental-application/internal/events"
	expensedomain "github.com/abdouni493/auto-rental-application/internal/expense/domain"
	expenseservice "github.com/abdouni493/auto-rental-application/internal/expense/service"
	"github.com/abdouni493/auto-rental-application/internal/insights"
	reservationdomain "github.com/abdouni493/auto-rental-application/internal/reservation/domain"
	reservationrepository "github.com/abdouni493/auto-rental-application/internal/reservation/repository"
	reservationservice "github.com/abdouni493/auto-rental-application/internal/reservation/service"
	"github.com/abdouni493/auto-rental-application/internal/template/editor"
	templatedomain "github.com/abdouni493/auto-rental-application/internal/template/domain"
	templaterepository "github.com/abdouni493/auto-rental-application/internal/template/repository"
	templateservice "github.com/abdouni493/auto-rental-application/internal/template/service"
	"github.com/abdouni493/auto-rental-application/internal/template/render"
	vehicledomain "github.com/abdouni493/auto-rental-application/internal/vehicle/domain"
	vehiclerepository "github.com/abdouni493/auto-rental-application/internal/vehicle/repository"
	vehicleservice "github.com/abdouni493/auto-rental-application/internal/vehicle/service"
	workerdomain "github.com/abdouni493/auto-rental-application/internal/worker/domain"
	workerservice "github.com/abdouni493/auto-rental-application/internal/worker/service"
)

var serverDBSeq int

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	serverDBSeq++
	dsn := fmt.Sprintf("file:server_test_%d?mode=memory&cache=shared", serverDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	err = db.AutoMigrate(
		&templatedomain.Template{},
		&customerdomain.Customer{},
		&vehicledomain.Vehicle{},
		&reservationdomain.Reservation{},
		&reservationdomain.LocationLog{},
		&agencydomain.Agency{},
		&workerdomain.Worker{},
		&workerdomain.Payment{},
		&expensedomain.Expense{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`CREATE TABLE rental_events (
		id INTEGER PRIMARY KEY,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		dedupe_key TEXT,
		published BOOLEAN NOT NULL DEFAULT false,
		created_at DATETIME NOT NULL
	)`).Error; err != nil {
		t.Fatalf("create rental_events: %v", err)
	}
	if err := db.Exec(`CREATE UNIQUE INDEX idx_rental_events_dedupe ON rental_events (dedupe_key)`).Error; err != nil {
		t.Fatalf("create dedupe index: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	cfg := config.Config{Environment: "test", Locale: "fr"}
	log := zap.NewNop()
	clk := clock.SystemClock{}
	outbox := events.NewOutbox(db, node)

	vehicleSvc := vehicleservice.NewService(vehicleservice.Params{
		DB: db, Log: log, GenID: node, Repo: vehiclerepository.Provide(),
	})

	return NewServer(Params{
		Cfg: cfg,
		Log: log,
		DB:  db,
		TemplateSvc: templateservice.NewService(templateservice.ServiceParam{
			DB: db, Log: log, GenID: node, Repo: templaterepository.Provide(), Outbox: outbox,
		}),
		EditorMgr: editor.NewManager(clk),
		Renderer:  render.NewRenderer(cfg, clk),
		CustomerSvc: customerservice.NewService(customerservice.Params{
			DB: db, Log: log, GenID: node, Repo: customerrepository.Provide(),
		}),
		VehicleSvc: vehicleSvc,
		ReservationSvc: reservationservice.NewService(reservationservice.Params{
			DB: db, Log: log, GenID: node, Clock: clk,
			Repo: reservationrepository.Provide(), Outbox: outbox, VehicleSvc: vehicleSvc,
		}),
		AgencySvc:   agencyservice.NewService(agencyservice.Params{DB: db, Log: log, GenID: node}),
		WorkerSvc:   workerservice.NewService(workerservice.Params{DB: db, Log: log, GenID: node}),
		ExpenseSvc:  expenseservice.NewService(expenseservice.Params{DB: db, Log: log, GenID: node}),
		InsightsSvc: insights.NewService(insights.Params{Cfg: cfg, Log: log}),
		Outbox:      outbox,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, envelope.Data)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestTemplateCRUDOverHTTP(t *testing.T) {
	s := newTestServer(t)

	tpl := templatedomain.Template{
		Name:         "Facture Professionnelle",
		Category:     templatedomain.CategoryInvoice,
		CanvasWidth:  595,
		CanvasHeight: 842,
		Elements: templatedomain.ElementList{
			{ID: "e1", Type: templatedomain.ElementVariable, Content: "Client: {{client_name}}", X: 50, Y: 100, Width: 200, Height: 40},
		},
	}

	w := doJSON(t, s, http.MethodPost, "/api/templates", tpl)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", w.Code, w.Body.String())
	}
	var catalog []templatedomain.Template
	decodeData(t, w, &catalog)
	if len(catalog) != 1 || catalog[0].ID == "" {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}
	id := catalog[0].ID

	w = doJSON(t, s, http.MethodGet, "/api/templates/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/templates?category=invoice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	decodeData(t, w, &catalog)
	if len(catalog) != 1 {
		t.Fatalf("category list size = %d", len(catalog))
	}

	w = doJSON(t, s, http.MethodDelete, "/api/templates/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	decodeData(t, w, &catalog)
	if len(catalog) != 0 {
		t.Fatalf("catalog not empty after delete")
	}
}

func TestSaveTemplateRejectsUnknownCategory(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/templates", map[string]any{
		"name":         "X",
		"category":     "receipt",
		"canvasWidth":  595,
		"canvasHeight": 842,
		"elements":     []any{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetTemplateNotFound(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/templates/tpl-missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestEditorSessionFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/editor/sessions", map[string]any{
		"name":     "Nouveau Design",
		"category": "quote",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("open status = %d: %s", w.Code, w.Body.String())
	}
	var session sessionResponse
	decodeData(t, w, &session)
	if session.SessionID == "" {
		t.Fatalf("missing session id")
	}

	w = doJSON(t, s, http.MethodPost, "/api/editor/sessions/"+session.SessionID+"/elements", map[string]any{
		"type":    "divider",
		"label":   "Séparateur",
		"content": "",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add element status = %d: %s", w.Code, w.Body.String())
	}
	var element templatedomain.Element
	decodeData(t, w, &element)
	if element.Height != 2 || element.Width != 500 {
		t.Fatalf("divider defaults = %dx%d", element.Width, element.Height)
	}

	// Drag: press at the element origin, move, release.
	for _, step := range []map[string]any{
		{"action": "begin", "elementId": element.ID, "x": element.X, "y": element.Y},
		{"action": "move", "x": 103, "y": 201},
		{"action": "end"},
	} {
		w = doJSON(t, s, http.MethodPost, "/api/editor/sessions/"+session.SessionID+"/drag", step)
		if w.Code != http.StatusOK {
			t.Fatalf("drag status = %d: %s", w.Code, w.Body.String())
		}
	}
	decodeData(t, w, &session)
	moved, ok := session.Template.Element(element.ID)
	if !ok {
		t.Fatalf("element lost after drag")
	}
	if moved.X != 104 || moved.Y != 202 {
		t.Fatalf("dragged to (%d, %d), want snapped (104, 202)", moved.X, moved.Y)
	}

	w = doJSON(t, s, http.MethodPost, "/api/editor/sessions/"+session.SessionID+"/save", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", w.Code, w.Body.String())
	}
	var catalog []templatedomain.Template
	decodeData(t, w, &catalog)
	if len(catalog) != 1 {
		t.Fatalf("catalog size = %d after session save", len(catalog))
	}

	// A second save must replace, not duplicate.
	w = doJSON(t, s, http.MethodPost, "/api/editor/sessions/"+session.SessionID+"/save", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("re-save status = %d", w.Code)
	}
	decodeData(t, w, &catalog)
	if len(catalog) != 1 {
		t.Fatalf("catalog size = %d after re-save, want 1", len(catalog))
	}
}

func TestEditorSessionsWithDuplicateNamesKeepTheirOwnTemplate(t *testing.T) {
	s := newTestServer(t)

	openSession := func() sessionResponse {
		w := doJSON(t, s, http.MethodPost, "/api/editor/sessions", map[string]any{
			"name":     "Devis Standard",
			"category": "quote",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("open status = %d: %s", w.Code, w.Body.String())
		}
		var session sessionResponse
		decodeData(t, w, &session)
		return session
	}
	save := func(sessionID string) []templatedomain.Template {
		w := doJSON(t, s, http.MethodPost, "/api/editor/sessions/"+sessionID+"/save", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("save status = %d: %s", w.Code, w.Body.String())
		}
		var catalog []templatedomain.Template
		decodeData(t, w, &catalog)
		return catalog
	}

	first := openSession()
	second := openSession()
	save(first.SessionID)
	if catalog := save(second.SessionID); len(catalog) != 2 {
		t.Fatalf("catalog size = %d after both saves, want 2", len(catalog))
	}

	// Edit only the second session; its re-save must land on its own
	// template, not on the one sharing the name and category.
	w := doJSON(t, s, http.MethodPost, "/api/editor/sessions/"+second.SessionID+"/elements", map[string]any{
		"type":  "divider",
		"label": "Séparateur",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add element status = %d: %s", w.Code, w.Body.String())
	}

	catalog := save(second.SessionID)
	if len(catalog) != 2 {
		t.Fatalf("catalog size = %d after re-save, want 2", len(catalog))
	}
	var withElement, without int
	for _, tpl := range catalog {
		if len(tpl.Elements) == 1 {
			withElement++
		} else if len(tpl.Elements) == 0 {
			without++
		}
	}
	if withElement != 1 || without != 1 {
		t.Fatalf("edit landed on the wrong template: %+v", catalog)
	}
}

func seedRentalFixtures(t *testing.T, s *Server) (templateID, reservationID string) {
	t.Helper()

	w := doJSON(t, s, http.MethodPost, "/api/customers", map[string]any{
		"firstName": "Karim",
		"lastName":  "Benali",
		"phone":     "0550123456",
	})
	var customer customerdomain.Customer
	decodeData(t, w, &customer)

	w = doJSON(t, s, http.MethodPost, "/api/vehicles", map[string]any{
		"brand":     "Volkswagen",
		"model":     "Golf 8",
		"plate":     "12345-116-16",
		"dailyRate": 9000,
	})
	var vehicle vehicledomain.Vehicle
	decodeData(t, w, &vehicle)

	w = doJSON(t, s, http.MethodPost, "/api/reservations", map[string]any{
		"customerId":  customer.ID,
		"vehicleId":   vehicle.ID,
		"startDate":   time.Now().UTC().Format(time.RFC3339),
		"endDate":     time.Now().UTC().Add(72 * time.Hour).Format(time.RFC3339),
		"totalAmount": 137500,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create reservation status = %d: %s", w.Code, w.Body.String())
	}
	var reservation reservationdomain.Reservation
	decodeData(t, w, &reservation)

	w = doJSON(t, s, http.MethodPost, "/api/templates", templatedomain.Template{
		Name:         "Facture",
		Category:     templatedomain.CategoryInvoice,
		CanvasWidth:  595,
		CanvasHeight: 842,
		Elements: templatedomain.ElementList{
			{ID: "e1", Type: templatedomain.ElementVariable, Content: "Client: {{client_name}} / {{res_number}}", X: 50, Y: 100, Width: 300, Height: 40},
		},
	})
	var catalog []templatedomain.Template
	decodeData(t, w, &catalog)

	return catalog[0].ID, reservation.ID
}

func TestPrintDocumentSharedAcrossSurfaces(t *testing.T) {
	s := newTestServer(t)
	templateID, reservationID := seedRentalFixtures(t, s)

	pages := make([]string, 0, 3)
	for _, surface := range []string{SurfaceBilling, SurfaceOperations, SurfacePlanner} {
		w := doJSON(t, s, http.MethodPost, "/api/documents/print", map[string]any{
			"templateId":    templateID,
			"reservationId": reservationID,
			"surface":       surface,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("print status = %d for %s: %s", w.Code, surface, w.Body.String())
		}
		pages = append(pages, w.Body.String())
	}

	if pages[0] != pages[1] || pages[1] != pages[2] {
		t.Fatalf("surfaces produced different documents")
	}
	if !strings.Contains(pages[0], "Client: Karim Benali") {
		t.Fatalf("customer name not substituted:\n%s", pages[0])
	}
	if strings.Contains(pages[0], "{{client_name}}") {
		t.Fatalf("token left in printed output")
	}
}

func TestPrintDocumentRejectsUnknownSurface(t *testing.T) {
	s := newTestServer(t)
	templateID, reservationID := seedRentalFixtures(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/documents/print", map[string]any{
		"templateId":    templateID,
		"reservationId": reservationID,
		"surface":       "warehouse",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestReservationWorkflowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	_, reservationID := seedRentalFixtures(t, s)

	// Activating a draft reservation must be refused.
	w := doJSON(t, s, http.MethodPost, "/api/reservations/"+reservationID+"/activate", map[string]any{})
	if w.Code != http.StatusConflict {
		t.Fatalf("draft activate status = %d, want 409", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/reservations/"+reservationID+"/confirm", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/reservations/"+reservationID+"/activate", map[string]any{
		"mileage":   42000,
		"fuelLevel": 80,
		"location":  "Agence Alger Centre",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("activate status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/reservations/"+reservationID+"/terminate", map[string]any{
		"mileage":   42650,
		"fuelLevel": 40,
		"location":  "Agence Alger Centre",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("terminate status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodGet, "/api/reservations/"+reservationID+"/logs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status = %d", w.Code)
	}
	var logs []reservationdomain.LocationLog
	decodeData(t, w, &logs)
	if len(logs) != 2 {
		t.Fatalf("log count = %d, want departure and return", len(logs))
	}
	if logs[0].Kind != reservationdomain.LogDeparture || logs[1].Kind != reservationdomain.LogReturn {
		t.Fatalf("unexpected log kinds: %+v", logs)
	}

	w = doJSON(t, s, http.MethodGet, "/api/stats/revenue", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats reservationdomain.RevenueStats
	decodeData(t, w, &stats)
	if stats.Count != 1 || stats.TotalRevenue != 137500 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestWorkerPaymentsOverHTTP(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/workers", map[string]any{
		"firstName": "Sofiane",
		"lastName":  "Meziane",
		"role":      "agent",
		"salary":    45000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create worker status = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &created)

	w = doJSON(t, s, http.MethodPost, "/api/workers/"+created.ID+"/payments", map[string]any{
		"amount": 45000,
		"kind":   "salary",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("payment status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/workers/"+created.ID+"/payments", map[string]any{
		"amount": 45000,
		"kind":   "loan",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown kind status = %d, want 400", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/workers/"+created.ID+"/payments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list payments status = %d", w.Code)
	}
}
