// Package repo implements the entity repositories over the encrypted
// document store. Each repository wraps one collection plus its gate and
// adds entity-specific identity, uniqueness and lifecycle rules; the
// storage mechanics are identical across all of them.
package repo

import (
	"time"

	"github.com/haulory/haulory/internal/docstore"
)

// Collection file names. One file per entity kind in the data directory.
const (
	accountsFile = "accounts.json.enc"
	driversFile  = "drivers.json.enc"
	jobsFile     = "jobs.json.enc"
	receiptsFile = "delivery_receipts.json.enc"
	vehiclesFile = "vehicle_assets.json.enc"
)

// Repos bundles every repository over one store environment.
type Repos struct {
	Accounts *Accounts
	Drivers  *Drivers
	Jobs     *Jobs
	Receipts *Receipts
	Vehicles *Vehicles
}

// New wires all repositories. A nil clock selects time.Now; tests inject a
// deterministic one.
func New(env *docstore.Env, now func() time.Time) *Repos {
	if now == nil {
		now = time.Now
	}
	return &Repos{
		Accounts: NewAccounts(env),
		Drivers:  NewDrivers(env),
		Jobs:     NewJobs(env),
		Receipts: NewReceipts(env),
		Vehicles: NewVehicles(env, now),
	}
}
