package routing

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"voyago/internal/config"
	"voyago/internal/managers"
	"voyago/internal/managers/mocks"
	"voyago/internal/schemas"
)

func testConfig() *config.Config {
	return &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func setupMocks(t *testing.T) (*mocks.MockDatabaseManager, managers.JWTMgr, *mocks.MockMailManager, *mocks.MockPlacesManager) {
	t.Helper()

	poolMock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("Error creating mock database pool: %v", err)
	}

	databaseMgrMock := &mocks.MockDatabaseManager{}
	databaseMgrMock.On("GetPool").Return(poolMock)

	jwtMgr := managers.NewJWTManager(config.JWTConfig{Secret: "test-secret", TTLMinutes: 60}, databaseMgrMock)

	mailMgrMock := &mocks.MockMailManager{}
	mailMgrMock.On("SendVerificationMail", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return(nil)
	mailMgrMock.On("SendPasswordResetMail", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return(nil)
	mailMgrMock.On("SendContactMail", mock.Anything).Return(nil)

	placesMgrMock := &mocks.MockPlacesManager{}

	return databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock
}

// expectAuthenticated registers the user lookup the bearer middleware runs
// for every protected request.
func expectAuthenticated(poolMock pgxmock.PgxPoolIface, userId string) {
	poolMock.ExpectQuery("SELECT is_active, is_superuser").
		WithArgs(userId).
		WillReturnRows(pgxmock.NewRows([]string{"is_active", "is_superuser"}).AddRow(true, false))
}

func badRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"code":    "ERR-001",
			"message": "The request body is invalid. Please check the request body and try again.",
		},
	}
}

func TestRegistration(t *testing.T) {
	validBody := map[string]interface{}{
		"email":     "traveler@example.com",
		"username":  "traveler",
		"password":  "pw1234567",
		"full_name": "Avid Traveler",
	}

	testCases := []struct {
		name         string
		body         map[string]interface{}
		status       int
		responseBody map[string]interface{}
	}{
		{
			"ValidRegistration",
			validBody,
			http.StatusCreated,
			nil,
		},
		{
			"InvalidEmail",
			map[string]interface{}{
				"email":    "traveler@example@.com",
				"username": "traveler",
				"password": "pw1234567",
			},
			http.StatusBadRequest,
			badRequestBody(),
		},
		{
			"ShortPassword",
			map[string]interface{}{
				"email":    "traveler@example.com",
				"username": "traveler",
				"password": "short",
			},
			http.StatusBadRequest,
			badRequestBody(),
		},
		{
			"DuplicateEmail",
			validBody,
			http.StatusConflict,
			map[string]interface{}{
				"error": map[string]interface{}{
					"code":    "ERR-003",
					"message": "The user with this email already exists in the system.",
				},
			},
		},
		{
			"DuplicateUsername",
			validBody,
			http.StatusConflict,
			map[string]interface{}{
				"error": map[string]interface{}{
					"code":    "ERR-002",
					"message": "The username is already taken. Please try another username.",
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
			router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
			server := httptest.NewServer(router)
			defer server.Close()

			poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

			switch tc.name {
			case "ValidRegistration":
				poolMock.ExpectBegin()
				poolMock.ExpectQuery("SELECT email, username").
					WithArgs("traveler@example.com", "traveler").
					WillReturnRows(pgxmock.NewRows([]string{"email", "username"}))
				poolMock.ExpectExec("INSERT INTO travel_schema.users").
					WithArgs(pgxmock.AnyArg(), "traveler@example.com", "traveler", pgxmock.AnyArg(),
						"Avid Traveler", pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				poolMock.ExpectCommit()
			case "DuplicateEmail":
				poolMock.ExpectBegin()
				poolMock.ExpectQuery("SELECT email, username").
					WithArgs("traveler@example.com", "traveler").
					WillReturnRows(pgxmock.NewRows([]string{"email", "username"}).
						AddRow("traveler@example.com", "othername"))
				poolMock.ExpectRollback()
			case "DuplicateUsername":
				poolMock.ExpectBegin()
				poolMock.ExpectQuery("SELECT email, username").
					WithArgs("traveler@example.com", "traveler").
					WillReturnRows(pgxmock.NewRows([]string{"email", "username"}).
						AddRow("other@example.com", "traveler"))
				poolMock.ExpectRollback()
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/api/v1/auth/register").WithJSON(tc.body).Expect().Status(tc.status)

			if tc.responseBody != nil {
				response.JSON().IsEqual(tc.responseBody)
			} else {
				obj := response.JSON().Object()
				obj.HasValue("email", "traveler@example.com")
				obj.HasValue("username", "traveler")
				obj.HasValue("full_name", "Avid Traveler")
				obj.ContainsKey("user_id")
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	password := "pw1234567"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userId := uuid.New()

	testCases := []struct {
		name     string
		password string
		isActive bool
		noUser   bool
		status   int
		errCode  string
	}{
		{"ValidLogin", password, true, false, http.StatusOK, ""},
		{"WrongPassword", "wrong-password", true, false, http.StatusUnauthorized, "ERR-006"},
		{"NotActivated", password, false, false, http.StatusUnauthorized, "ERR-007"},
		{"UnknownEmail", password, true, true, http.StatusUnauthorized, "ERR-006"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
			router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
			server := httptest.NewServer(router)
			defer server.Close()

			poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

			poolMock.ExpectBegin()
			if tc.noUser {
				poolMock.ExpectQuery("SELECT user_id, password, is_active").
					WithArgs("traveler@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"user_id", "password", "is_active"}))
				poolMock.ExpectRollback()
			} else {
				poolMock.ExpectQuery("SELECT user_id, password, is_active").
					WithArgs("traveler@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"user_id", "password", "is_active"}).
						AddRow(userId, string(hash), tc.isActive))
				if tc.status == http.StatusOK {
					poolMock.ExpectExec("UPDATE travel_schema.users").
						WithArgs(pgxmock.AnyArg(), userId).
						WillReturnResult(pgxmock.NewResult("UPDATE", 1))
					poolMock.ExpectCommit()
				} else {
					poolMock.ExpectRollback()
				}
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/api/v1/auth/login").WithJSON(map[string]interface{}{
				"email":    "traveler@example.com",
				"password": tc.password,
			}).Expect().Status(tc.status)

			if tc.status == http.StatusOK {
				obj := response.JSON().Object()
				obj.HasValue("token_type", "bearer")
				obj.Value("access_token").String().NotEmpty()
			} else {
				response.JSON().Object().Value("error").Object().HasValue("code", tc.errCode)
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	testCases := []struct {
		name         string
		rowsAffected int64
		status       int
	}{
		{"ValidToken", 1, http.StatusOK},
		{"WrongToken", 0, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
			router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
			server := httptest.NewServer(router)
			defer server.Close()

			poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

			poolMock.ExpectBegin()
			poolMock.ExpectExec("UPDATE travel_schema.users").
				WithArgs(pgxmock.AnyArg(), "traveler@example.com", "some-token").
				WillReturnResult(pgxmock.NewResult("UPDATE", tc.rowsAffected))
			if tc.rowsAffected == 1 {
				poolMock.ExpectCommit()
			} else {
				poolMock.ExpectRollback()
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/api/v1/auth/verify-email").WithJSON(map[string]interface{}{
				"email": "traveler@example.com",
				"token": "some-token",
			}).Expect().Status(tc.status)

			if tc.status == http.StatusOK {
				response.JSON().Object().HasValue("message", "Email verified successfully")
			} else {
				response.JSON().Object().Value("error").Object().HasValue("code", "ERR-005")
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestForgotPasswordIsGeneric(t *testing.T) {
	genericMessage := "If the email exists, a password reset link will be sent"

	testCases := []struct {
		name  string
		known bool
	}{
		{"KnownEmail", true},
		{"UnknownEmail", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
			router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
			server := httptest.NewServer(router)
			defer server.Close()

			poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

			poolMock.ExpectBegin()
			if tc.known {
				poolMock.ExpectQuery("SELECT user_id, username").
					WithArgs("traveler@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"user_id", "username"}).
						AddRow(uuid.New(), "traveler"))
				poolMock.ExpectExec("UPDATE travel_schema.users").
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			} else {
				poolMock.ExpectQuery("SELECT user_id, username").
					WithArgs("traveler@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"user_id", "username"}))
			}
			poolMock.ExpectCommit()

			expect := httpexpect.Default(t, server.URL)
			expect.POST("/api/v1/auth/forgot-password").WithJSON(map[string]interface{}{
				"email": "traveler@example.com",
			}).Expect().Status(http.StatusOK).JSON().Object().HasValue("message", genericMessage)

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestResetPassword(t *testing.T) {
	userId := uuid.New()
	futureExpiry := time.Now().Add(time.Hour)
	pastExpiry := time.Now().Add(-time.Hour)

	testCases := []struct {
		name       string
		tokenKnown bool
		expiresAt  *time.Time
		status     int
	}{
		{"ValidToken", true, &futureExpiry, http.StatusOK},
		{"ExpiredToken", true, &pastExpiry, http.StatusBadRequest},
		{"WrongToken", false, nil, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
			router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
			server := httptest.NewServer(router)
			defer server.Close()

			poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

			poolMock.ExpectBegin()
			if tc.tokenKnown {
				poolMock.ExpectQuery("SELECT user_id, reset_token_expires").
					WithArgs("traveler@example.com", "reset-token").
					WillReturnRows(pgxmock.NewRows([]string{"user_id", "reset_token_expires"}).
						AddRow(userId, tc.expiresAt))
			} else {
				poolMock.ExpectQuery("SELECT user_id, reset_token_expires").
					WithArgs("traveler@example.com", "reset-token").
					WillReturnRows(pgxmock.NewRows([]string{"user_id", "reset_token_expires"}))
			}
			if tc.status == http.StatusOK {
				poolMock.ExpectExec("UPDATE travel_schema.users").
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), userId).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				poolMock.ExpectCommit()
			} else {
				poolMock.ExpectRollback()
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/api/v1/auth/reset-password").WithJSON(map[string]interface{}{
				"email":        "traveler@example.com",
				"token":        "reset-token",
				"new_password": "pw7654321",
			}).Expect().Status(tc.status)

			if tc.status == http.StatusOK {
				response.JSON().Object().HasValue("message", "Password reset successfully")
			} else {
				response.JSON().Object().Value("error").Object().HasValue("code", "ERR-009")
			}

			if err := poolMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestCreateTrip(t *testing.T) {
	userId := uuid.New().String()
	destinationId := uuid.New()

	t.Run("ValidTripWithDestination", func(t *testing.T) {
		databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
		router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
		server := httptest.NewServer(router)
		defer server.Close()

		token, _ := jwtMgr.GenerateJWT(userId)
		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

		expectAuthenticated(poolMock, userId)
		poolMock.ExpectBegin()
		poolMock.ExpectQuery("SELECT destination_id").
			WithArgs(pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"destination_id"}).AddRow(destinationId))
		poolMock.ExpectExec("INSERT INTO travel_schema.trips").
			WithArgs(pgxmock.AnyArg(), userId, "Bali Trip", "Two weeks in Bali", pgxmock.AnyArg(),
				pgxmock.AnyArg(), false, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		poolMock.ExpectExec("INSERT INTO travel_schema.trip_destinations").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), destinationId.String(), 1, 0, "", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		poolMock.ExpectCommit()

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/v1/trips/").
			WithHeader("Authorization", "Bearer "+token).
			WithJSON(map[string]interface{}{
				"title":       "Bali Trip",
				"description": "Two weeks in Bali",
				"start_date":  "2026-09-01",
				"end_date":    "2026-09-14",
				"destinations": []map[string]interface{}{
					{"destination_id": destinationId.String(), "day_number": 1, "order": 0},
				},
			}).Expect().Status(http.StatusCreated)

		obj := response.JSON().Object()
		obj.HasValue("title", "Bali Trip")
		obj.HasValue("start_date", "2026-09-01")
		obj.Value("destinations").Array().Length().IsEqual(1)

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("EndDateBeforeStartDate", func(t *testing.T) {
		databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
		router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
		server := httptest.NewServer(router)
		defer server.Close()

		token, _ := jwtMgr.GenerateJWT(userId)
		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		expectAuthenticated(poolMock, userId)

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/v1/trips/").
			WithHeader("Authorization", "Bearer "+token).
			WithJSON(map[string]interface{}{
				"title":      "Backwards Trip",
				"start_date": "2026-09-14",
				"end_date":   "2026-09-01",
			}).Expect().Status(http.StatusBadRequest).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-018")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("UnknownDestination", func(t *testing.T) {
		databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
		router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
		server := httptest.NewServer(router)
		defer server.Close()

		token, _ := jwtMgr.GenerateJWT(userId)
		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

		expectAuthenticated(poolMock, userId)
		poolMock.ExpectBegin()
		poolMock.ExpectQuery("SELECT destination_id").
			WithArgs(pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"destination_id"}))
		poolMock.ExpectRollback()

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/v1/trips/").
			WithHeader("Authorization", "Bearer "+token).
			WithJSON(map[string]interface{}{
				"title":      "Ghost Trip",
				"start_date": "2026-09-01",
				"end_date":   "2026-09-14",
				"destinations": []map[string]interface{}{
					{"destination_id": destinationId.String(), "day_number": 1, "order": 0},
				},
			}).Expect().Status(http.StatusNotFound)

		errObj := response.JSON().Object().Value("error").Object()
		errObj.HasValue("code", "ERR-016")
		errObj.Value("message").String().Contains(destinationId.String())

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("MissingToken", func(t *testing.T) {
		databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
		router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
		server := httptest.NewServer(router)
		defer server.Close()

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/v1/trips/").
			WithJSON(map[string]interface{}{
				"title":      "No Auth Trip",
				"start_date": "2026-09-01",
				"end_date":   "2026-09-14",
			}).Expect().Status(http.StatusUnauthorized).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-014")
	})
}

func TestUpdateTrip(t *testing.T) {
	userId := uuid.New().String()
	tripId := uuid.New()
	tripStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tripEnd := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	tripCreated := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
	router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
	server := httptest.NewServer(router)
	defer server.Close()

	token, _ := jwtMgr.GenerateJWT(userId)
	poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

	// The attachments are read back inside the transaction, before the commit.
	expectAuthenticated(poolMock, userId)
	poolMock.ExpectBegin()
	poolMock.ExpectQuery("SELECT title, description, start_date, end_date").
		WithArgs(tripId, userId).
		WillReturnRows(pgxmock.NewRows([]string{"title", "description", "start_date", "end_date", "is_public", "created_at"}).
			AddRow("Bali Trip", "Two weeks in Bali", tripStart, tripEnd, false, tripCreated))
	poolMock.ExpectExec("UPDATE travel_schema.trips").
		WithArgs("Extended Bali Trip", "Two weeks in Bali", tripStart, tripEnd, false, tripId, userId).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	poolMock.ExpectQuery("SELECT trip_id, destination_id, day_number").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"trip_id", "destination_id", "day_number", "order_index", "notes", "start_time", "duration_minutes"}))
	poolMock.ExpectCommit()

	expect := httpexpect.Default(t, server.URL)
	response := expect.PUT("/api/v1/trips/"+tripId.String()).
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(map[string]interface{}{"title": "Extended Bali Trip"}).
		Expect().Status(http.StatusOK)

	obj := response.JSON().Object()
	obj.HasValue("title", "Extended Bali Trip")
	obj.HasValue("description", "Two weeks in Bali")
	obj.Value("destinations").Array().Length().IsEqual(0)

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestReorderTrip(t *testing.T) {
	userId := uuid.New().String()
	tripId := uuid.New()
	tripStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tripEnd := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	tripCreated := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("EmptyListClearsItinerary", func(t *testing.T) {
		databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
		router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
		server := httptest.NewServer(router)
		defer server.Close()

		token, _ := jwtMgr.GenerateJWT(userId)
		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

		expectAuthenticated(poolMock, userId)
		poolMock.ExpectBegin()
		poolMock.ExpectQuery("SELECT title, description, start_date, end_date").
			WithArgs(tripId, userId).
			WillReturnRows(pgxmock.NewRows([]string{"title", "description", "start_date", "end_date", "is_public", "created_at"}).
				AddRow("Bali Trip", "Two weeks in Bali", tripStart, tripEnd, false, tripCreated))
		poolMock.ExpectExec("DELETE FROM travel_schema.trip_destinations").
			WithArgs(tripId).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		poolMock.ExpectCommit()

		expect := httpexpect.Default(t, server.URL)
		response := expect.PUT("/api/v1/trips/"+tripId.String()+"/reorder").
			WithHeader("Authorization", "Bearer "+token).
			WithJSON(map[string]interface{}{"destinations": []map[string]interface{}{}}).
			Expect().Status(http.StatusOK)

		obj := response.JSON().Object()
		obj.HasValue("trip_id", tripId.String())
		obj.Value("destinations").Array().Length().IsEqual(0)

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("NoOpInputKeepsAttachments", func(t *testing.T) {
		destinationId := uuid.New()

		databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
		router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
		server := httptest.NewServer(router)
		defer server.Close()

		token, _ := jwtMgr.GenerateJWT(userId)
		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

		// Resubmitting the current itinerary stores it verbatim and returns
		// the same representation.
		expectAuthenticated(poolMock, userId)
		poolMock.ExpectBegin()
		poolMock.ExpectQuery("SELECT title, description, start_date, end_date").
			WithArgs(tripId, userId).
			WillReturnRows(pgxmock.NewRows([]string{"title", "description", "start_date", "end_date", "is_public", "created_at"}).
				AddRow("Bali Trip", "Two weeks in Bali", tripStart, tripEnd, false, tripCreated))
		poolMock.ExpectExec("DELETE FROM travel_schema.trip_destinations").
			WithArgs(tripId).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		poolMock.ExpectExec("INSERT INTO travel_schema.trip_destinations").
			WithArgs(pgxmock.AnyArg(), tripId, destinationId.String(), 1, 0, "morning", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		poolMock.ExpectCommit()

		expect := httpexpect.Default(t, server.URL)
		response := expect.PUT("/api/v1/trips/"+tripId.String()+"/reorder").
			WithHeader("Authorization", "Bearer "+token).
			WithJSON(map[string]interface{}{
				"destinations": []map[string]interface{}{
					{"destination_id": destinationId.String(), "day_number": 1, "order": 0, "notes": "morning"},
				},
			}).Expect().Status(http.StatusOK)

		destinations := response.JSON().Object().Value("destinations").Array()
		destinations.Length().IsEqual(1)
		first := destinations.Value(0).Object()
		first.HasValue("destination_id", destinationId.String())
		first.HasValue("day_number", 1)
		first.HasValue("order", 0)
		first.HasValue("notes", "morning")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("NotOwnedReadsAsMissing", func(t *testing.T) {
		databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
		router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
		server := httptest.NewServer(router)
		defer server.Close()

		token, _ := jwtMgr.GenerateJWT(userId)
		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

		expectAuthenticated(poolMock, userId)
		poolMock.ExpectBegin()
		poolMock.ExpectQuery("SELECT title, description, start_date, end_date").
			WithArgs(tripId, userId).
			WillReturnRows(pgxmock.NewRows([]string{"title", "description", "start_date", "end_date", "is_public", "created_at"}))
		poolMock.ExpectRollback()

		expect := httpexpect.Default(t, server.URL)
		expect.PUT("/api/v1/trips/"+tripId.String()+"/reorder").
			WithHeader("Authorization", "Bearer "+token).
			WithJSON(map[string]interface{}{"destinations": []map[string]interface{}{}}).
			Expect().Status(http.StatusNotFound).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-017")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

func TestSearchDestinations(t *testing.T) {
	destinationColumns := []string{"destination_id", "name", "description", "latitude", "longitude",
		"formatted_address", "place_id", "rating", "user_ratings_total", "price_level", "website",
		"phone", "photos", "activities", "country", "city", "image_url"}

	t.Run("MissingQuery", func(t *testing.T) {
		databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
		router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
		server := httptest.NewServer(router)
		defer server.Close()

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)

		expect := httpexpect.Default(t, server.URL)
		expect.GET("/api/v1/destinations/search").Expect().Status(http.StatusBadRequest).
			JSON().IsEqual(badRequestBody())

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("MatchingQuery", func(t *testing.T) {
		destinationId := uuid.New()

		databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
		router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
		server := httptest.NewServer(router)
		defer server.Close()

		poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
		poolMock.ExpectQuery("SELECT destination_id, name").
			WithArgs("%bali%", 10).
			WillReturnRows(pgxmock.NewRows(destinationColumns).
				AddRow(destinationId, "Bali", "Island of the gods", nil, nil, "", nil, nil, nil,
					nil, nil, nil, nil, nil, "Indonesia", "Denpasar", ""))

		expect := httpexpect.Default(t, server.URL)
		results := expect.GET("/api/v1/destinations/search").
			WithQuery("query", "bali").
			Expect().Status(http.StatusOK).JSON().Array()

		results.Length().IsEqual(1)
		result := results.Value(0).Object()
		result.HasValue("destination_id", destinationId.String())
		result.HasValue("name", "Bali")
		result.HasValue("country", "Indonesia")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

// TestGetOrCreateByPlace materializes a destination on the first lookup and
// serves the stored row afterwards without asking the provider again.
func TestGetOrCreateByPlace(t *testing.T) {
	userId := uuid.New().String()
	destinationId := uuid.New()
	placeId := "ChIJwogBali"
	lat, lng := -8.5069, 115.2625

	destinationColumns := []string{"destination_id", "name", "description", "latitude", "longitude",
		"formatted_address", "place_id", "rating", "user_ratings_total", "price_level", "website",
		"phone", "photos", "activities", "country", "city", "image_url"}

	databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
	placesMgrMock.On("PlaceDetails", mock.Anything, placeId, "en").Return(&schemas.PlaceDetailsDTO{
		PlaceID:          placeId,
		Name:             "Ubud",
		FormattedAddress: "Ubud, Bali, Indonesia",
		Coordinates:      schemas.CoordinatesDTO{Lat: lat, Lng: lng},
		Types:            []string{"locality"},
		Photos:           []string{"https://example.com/ubud.jpg"},
	}, nil).Once()

	router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
	server := httptest.NewServer(router)
	defer server.Close()

	token, _ := jwtMgr.GenerateJWT(userId)
	poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
	expect := httpexpect.Default(t, server.URL)

	// First lookup misses locally and persists the provider record
	expectAuthenticated(poolMock, userId)
	poolMock.ExpectQuery("SELECT destination_id, name").
		WithArgs(placeId).
		WillReturnError(pgx.ErrNoRows)
	poolMock.ExpectBegin()
	poolMock.ExpectExec("INSERT INTO travel_schema.destinations").
		WithArgs(pgxmock.AnyArg(), "Ubud", lat, lng, "Ubud, Bali, Indonesia", placeId,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), "https://example.com/ubud.jpg", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	poolMock.ExpectCommit()

	created := expect.GET("/api/v1/destinations/place/"+placeId).
		WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusCreated).JSON().Object()
	created.HasValue("name", "Ubud")
	created.HasValue("place_id", placeId)

	// Second lookup is served from the stored row
	expectAuthenticated(poolMock, userId)
	poolMock.ExpectQuery("SELECT destination_id, name").
		WithArgs(placeId).
		WillReturnRows(pgxmock.NewRows(destinationColumns).
			AddRow(destinationId, "Ubud", "", &lat, &lng, "Ubud, Bali, Indonesia", &placeId,
				nil, nil, nil, nil, nil, []string{"https://example.com/ubud.jpg"},
				[]string{"locality"}, "", "", "https://example.com/ubud.jpg"))

	stored := expect.GET("/api/v1/destinations/place/"+placeId).
		WithHeader("Authorization", "Bearer "+token).
		Expect().Status(http.StatusOK).JSON().Object()
	stored.HasValue("destination_id", destinationId.String())
	stored.HasValue("place_id", placeId)

	placesMgrMock.AssertNumberOfCalls(t, "PlaceDetails", 1)

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	userId := uuid.New().String()

	databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
	router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
	server := httptest.NewServer(router)
	defer server.Close()

	token, _ := jwtMgr.GenerateJWT(userId)
	poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
	expectAuthenticated(poolMock, userId)

	expect := httpexpect.Default(t, server.URL)
	expect.POST("/api/v1/reviews/").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(map[string]interface{}{
			"destination_id": uuid.New().String(),
			"rating":         6,
		}).Expect().Status(http.StatusBadRequest).
		JSON().IsEqual(badRequestBody())

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestHealthz(t *testing.T) {
	databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
	router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
	server := httptest.NewServer(router)
	defer server.Close()

	poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
	poolMock.ExpectPing()

	expect := httpexpect.Default(t, server.URL)
	expect.GET("/healthz").Expect().Status(http.StatusOK).
		JSON().IsEqual(map[string]interface{}{"status": "ok"})

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestMetadata(t *testing.T) {
	databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
	router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
	server := httptest.NewServer(router)
	defer server.Close()

	expect := httpexpect.Default(t, server.URL)
	expect.GET("/").Expect().Status(http.StatusOK).
		JSON().IsEqual(map[string]interface{}{"apiVersion": "v1", "apiName": "Voyago"})
}

func TestI18nRoutes(t *testing.T) {
	databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
	router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
	server := httptest.NewServer(router)
	defer server.Close()

	expect := httpexpect.Default(t, server.URL)

	locales := expect.GET("/api/v1/i18n/locales").Expect().Status(http.StatusOK).JSON().Array()
	locales.Length().IsEqual(2)
	locales.Value(0).Object().HasValue("code", "en")

	translations := expect.GET("/api/v1/i18n/translations/en").Expect().Status(http.StatusOK).JSON().Object()
	translations.Value("common").Object().HasValue("search", "Search")

	expect.GET("/api/v1/i18n/translations/fr").Expect().Status(http.StatusNotFound).
		JSON().Object().Value("error").Object().HasValue("code", "ERR-021")
}

func TestContactForm(t *testing.T) {
	databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
	router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
	server := httptest.NewServer(router)
	defer server.Close()

	expect := httpexpect.Default(t, server.URL)
	expect.POST("/api/v1/contact").WithJSON(map[string]interface{}{
		"name":    "Jordan",
		"email":   "jordan@example.com",
		"subject": "Feedback",
		"message": "Great service!",
	}).Expect().Status(http.StatusOK).JSON().IsEqual(map[string]interface{}{
		"status":  "success",
		"message": "Thank you for your message",
	})
}

// TestRegisterVerifyLoginTripFlow walks the happy path a new user takes:
// register, verify the email, log in, create a trip and clear its itinerary.
func TestRegisterVerifyLoginTripFlow(t *testing.T) {
	userId := uuid.New()
	password := "pw1234567"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	databaseMgrMock, jwtMgr, mailMgrMock, placesMgrMock := setupMocks(t)
	router := InitRouter(testConfig(), databaseMgrMock, mailMgrMock, jwtMgr, placesMgrMock)
	server := httptest.NewServer(router)
	defer server.Close()

	poolMock := databaseMgrMock.GetPool().(pgxmock.PgxPoolIface)
	expect := httpexpect.Default(t, server.URL)

	// Register
	poolMock.ExpectBegin()
	poolMock.ExpectQuery("SELECT email, username").
		WithArgs("flow@example.com", "flowuser").
		WillReturnRows(pgxmock.NewRows([]string{"email", "username"}))
	poolMock.ExpectExec("INSERT INTO travel_schema.users").
		WithArgs(pgxmock.AnyArg(), "flow@example.com", "flowuser", pgxmock.AnyArg(), "",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	poolMock.ExpectCommit()

	expect.POST("/api/v1/auth/register").WithJSON(map[string]interface{}{
		"email":    "flow@example.com",
		"username": "flowuser",
		"password": password,
	}).Expect().Status(http.StatusCreated)

	// Verify email
	poolMock.ExpectBegin()
	poolMock.ExpectExec("UPDATE travel_schema.users").
		WithArgs(pgxmock.AnyArg(), "flow@example.com", "verification-token").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	poolMock.ExpectCommit()

	expect.POST("/api/v1/auth/verify-email").WithJSON(map[string]interface{}{
		"email": "flow@example.com",
		"token": "verification-token",
	}).Expect().Status(http.StatusOK)

	// Login
	poolMock.ExpectBegin()
	poolMock.ExpectQuery("SELECT user_id, password, is_active").
		WithArgs("flow@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "password", "is_active"}).
			AddRow(userId, string(hash), true))
	poolMock.ExpectExec("UPDATE travel_schema.users").
		WithArgs(pgxmock.AnyArg(), userId).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	poolMock.ExpectCommit()

	token := expect.POST("/api/v1/auth/login").WithJSON(map[string]interface{}{
		"email":    "flow@example.com",
		"password": password,
	}).Expect().Status(http.StatusOK).JSON().Object().Value("access_token").String().Raw()

	// Create a trip without destinations
	expectAuthenticated(poolMock, userId.String())
	poolMock.ExpectBegin()
	poolMock.ExpectExec("INSERT INTO travel_schema.trips").
		WithArgs(pgxmock.AnyArg(), userId.String(), "Island Hopping", "", pgxmock.AnyArg(),
			pgxmock.AnyArg(), false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	poolMock.ExpectCommit()

	tripId := expect.POST("/api/v1/trips/").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(map[string]interface{}{
			"title":      "Island Hopping",
			"start_date": "2026-10-01",
			"end_date":   "2026-10-10",
		}).Expect().Status(http.StatusCreated).JSON().Object().Value("trip_id").String().Raw()

	// Reorder with an empty list
	tripStart := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	tripEnd := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)

	expectAuthenticated(poolMock, userId.String())
	poolMock.ExpectBegin()
	poolMock.ExpectQuery("SELECT title, description, start_date, end_date").
		WithArgs(pgxmock.AnyArg(), userId.String()).
		WillReturnRows(pgxmock.NewRows([]string{"title", "description", "start_date", "end_date", "is_public", "created_at"}).
			AddRow("Island Hopping", "", tripStart, tripEnd, false, time.Now()))
	poolMock.ExpectExec("DELETE FROM travel_schema.trip_destinations").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	poolMock.ExpectCommit()

	response := expect.PUT("/api/v1/trips/"+tripId+"/reorder").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(map[string]interface{}{"destinations": []map[string]interface{}{}}).
		Expect().Status(http.StatusOK)

	response.JSON().Object().Value("destinations").Array().Length().IsEqual(0)

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
