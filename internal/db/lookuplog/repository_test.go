package lookuplog_test

import (
	"database/sql"
	"errors"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"testing"
	"time"
	"ulascansenturk/clima/internal/db/lookuplog"
)

type LookupRepositorySuite struct {
	suite.Suite
	DB   *gorm.DB
	mock sqlmock.Sqlmock
	repo lookuplog.Repository
}

func (s *LookupRepositorySuite) SetupSuite() {
	var err error

	var db *sql.DB
	db, s.mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	s.Require().NoError(err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	s.DB, err = gorm.Open(dialector, &gorm.Config{})
	s.Require().NoError(err)

	s.repo = lookuplog.NewRepository(s.DB)
}

func (s *LookupRepositorySuite) TearDownTest() {
	s.Require().NoError(s.mock.ExpectationsWereMet())
}

func (s *LookupRepositorySuite) TestLogLookup() {
	s.Run("Successfully logs a resolved lookup", func() {
		temp := 27

		s.mock.ExpectBegin()
		s.mock.ExpectQuery(`INSERT INTO "lookup_records"`).
			WithArgs(
				"Managua",
				"NI",
				lookuplog.OutcomeSucceeded,
				"Managua",
				sqlmock.AnyArg(),
				"01d",
				sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		s.mock.ExpectCommit()

		err := s.repo.LogLookup(lookuplog.LookupRecord{
			City:         "Managua",
			CountryCode:  "NI",
			Outcome:      lookuplog.OutcomeSucceeded,
			LocationName: "Managua",
			TemperatureC: &temp,
			IconCode:     "01d",
		})

		s.Require().NoError(err)
	})

	s.Run("Logs a not found lookup without weather columns", func() {
		s.mock.ExpectBegin()
		s.mock.ExpectQuery(`INSERT INTO "lookup_records"`).
			WithArgs(
				"Atlantis",
				"PA",
				lookuplog.OutcomeNotFound,
				"",
				sqlmock.AnyArg(),
				"",
				sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		s.mock.ExpectCommit()

		err := s.repo.LogLookup(lookuplog.LookupRecord{
			City:        "Atlantis",
			CountryCode: "PA",
			Outcome:     lookuplog.OutcomeNotFound,
		})

		s.Require().NoError(err)
	})

	s.Run("Returns error when database operation fails", func() {
		dbError := errors.New("database error")

		s.mock.ExpectBegin()
		s.mock.ExpectQuery(`INSERT INTO "lookup_records"`).
			WillReturnError(dbError)
		s.mock.ExpectRollback()

		err := s.repo.LogLookup(lookuplog.LookupRecord{
			City:        "León",
			CountryCode: "NI",
			Outcome:     lookuplog.OutcomeTransportFailure,
		})

		s.Require().Error(err)
		s.Require().Equal("database error", err.Error())
	})
}

func (s *LookupRepositorySuite) TestRecentLookups() {
	queryRegex := `SELECT \* FROM "lookup_records" ORDER BY created_at DESC LIMIT \$1`

	s.Run("Successfully retrieves the newest records", func() {
		createdAt := time.Now()

		rows := sqlmock.NewRows([]string{
			"id", "city", "country_code", "outcome", "location_name", "temperature_c", "icon_code", "created_at",
		}).
			AddRow(2, "Lima", "PE", lookuplog.OutcomeSucceeded, "Lima", 19, "02d", createdAt).
			AddRow(1, "Atlantis", "PA", lookuplog.OutcomeNotFound, "", nil, "", createdAt.Add(-time.Minute))

		s.mock.ExpectQuery(queryRegex).
			WithArgs(10).
			WillReturnRows(rows)

		result, err := s.repo.RecentLookups(10)

		s.Require().NoError(err)
		s.Require().Len(result, 2)
		s.Require().Equal("Lima", result[0].City)
		s.Require().NotNil(result[0].TemperatureC)
		s.Require().Equal(19, *result[0].TemperatureC)
		s.Require().Equal(lookuplog.OutcomeNotFound, result[1].Outcome)
		s.Require().Nil(result[1].TemperatureC)
	})

	s.Run("Clamps out of range limits", func() {
		s.mock.ExpectQuery(queryRegex).
			WithArgs(100).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		result, err := s.repo.RecentLookups(0)

		s.Require().NoError(err)
		s.Require().Empty(result)
	})

	s.Run("Returns error when database query fails", func() {
		dbError := errors.New("connection error")

		s.mock.ExpectQuery(queryRegex).
			WithArgs(100).
			WillReturnError(dbError)

		result, err := s.repo.RecentLookups(500)

		s.Require().Error(err)
		s.Require().Equal("connection error", err.Error())
		s.Require().Nil(result)
	})
}

func TestLookupRepositorySuite(t *testing.T) {
	suite.Run(t, new(LookupRepositorySuite))
}
