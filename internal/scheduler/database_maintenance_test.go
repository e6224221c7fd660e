package scheduler

import (
	"testing"

	"github.com/aristath/divdesk/internal/database"
	testingpkg "github.com/aristath/divdesk/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDatabaseMaintenanceJob_Run(t *testing.T) {
	ledger, cleanupLedger := testingpkg.NewTestDB(t, "ledger")
	defer cleanupLedger()
	universe, cleanupUniverse := testingpkg.NewTestDB(t, "universe")
	defer cleanupUniverse()

	job := NewDatabaseMaintenanceJob(ledger, universe, nil)
	job.SetLogger(zerolog.New(nil).Level(zerolog.Disabled))

	assert.Len(t, job.databases, 2)
	assert.NoError(t, job.Run())
	assert.Equal(t, "database_maintenance", job.Name())
}

func TestDatabaseMaintenanceJob_NoDatabases(t *testing.T) {
	job := NewDatabaseMaintenanceJob()
	assert.NoError(t, job.Run())

	var missing *database.DB
	assert.Empty(t, NewDatabaseMaintenanceJob(missing).databases)
}
