package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	_, err := execute(cmd, "register", "--first", "Jane", "--last", "Doe",
		"--email", "jane@haulory.test", "--password", "s3cret")
	require.NoError(t, err)
}

func TestRegisterAndDriverList(t *testing.T) {
	cmd, a := newTestCommand(t)

	out, err := execute(cmd, "register", "--first", "Jane", "--last", "Doe",
		"--email", "jane@haulory.test", "--password", "s3cret")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Jane Doe")
	assert.NotEqual(t, uuid.Nil, a.ActingAccount(), "registration starts a session")

	out, err = execute(cmd, "driver", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "owner")

	out, err = execute(cmd, "driver", "add", "--first", "Sam", "--last", "Crew", "--email", "sam@haulory.test")
	require.NoError(t, err)
	assert.Contains(t, out, "Added driver Sam Crew")
}

func TestJobLifecycle(t *testing.T) {
	cmd, _ := newTestCommand(t)
	register(t, cmd)

	out, err := execute(cmd, "job", "add",
		"--pickup-company", "Acme", "--pickup-address", "1 Pickup Rd",
		"--delivery-company", "Bolt", "--delivery-address", "2 Drop St",
		"--rate", "fixed", "--rate-value", "500", "--quantity", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "total 1000.00")

	out, err = execute(cmd, "job", "list")
	require.NoError(t, err)
	idPattern := regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	jobID := idPattern.FindString(out)
	require.NotEmpty(t, jobID, "job list should show the job id, got %q", out)

	sigPath := filepath.Join(t.TempDir(), "sig.json")
	sig := `{"strokes":[{"points":[{"x":1,"y":1},{"x":2,"y":2},{"x":3,"y":1}]}]}`
	require.NoError(t, os.WriteFile(sigPath, []byte(sig), 0o600))

	out, err = execute(cmd, "job", "deliver", jobID, "--receiver", "R. Receiver", "--signature-file", sigPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Delivered")

	out, err = execute(cmd, "job", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, jobID, "delivered job leaves the board")

	out, err = execute(cmd, "receipt", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "signed by R. Receiver")
}

func TestJobDeliver_MissingSignatureFails(t *testing.T) {
	cmd, _ := newTestCommand(t)
	register(t, cmd)

	_, err := execute(cmd, "job", "add",
		"--pickup-company", "Acme", "--delivery-company", "Bolt",
		"--rate", "fixed", "--rate-value", "100")
	require.NoError(t, err)

	out, err := execute(cmd, "job", "list")
	require.NoError(t, err)
	jobID := regexp.MustCompile(`[0-9a-f-]{36}`).FindString(out)
	require.NotEmpty(t, jobID)

	out, err = execute(cmd, "job", "deliver", jobID, "--receiver", "R. Receiver")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "signature")
}

func TestVehicleImportAndList(t *testing.T) {
	cmd, _ := newTestCommand(t)
	register(t, cmd)

	setYAML := `units:
  - kind: powerUnit
    rego: trk1
    make: Scania
    model: R500
    year: 2020
    certificateType: cof
    vehicleType: truckClass4
    fuelType: diesel
  - kind: heavyTrailer
    rego: TRL1
    class: 5
    configuration: curtainsider
`
	path := filepath.Join(t.TempDir(), "set.yaml")
	require.NoError(t, os.WriteFile(path, []byte(setYAML), 0o600))

	out, err := execute(cmd, "vehicle", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created set")
	assert.Contains(t, out, "2 units")

	out, err = execute(cmd, "vehicle", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TRK1", "rego is uppercased on save")
	assert.Contains(t, out, "TRL1")
}

func TestVehicleImport_UnknownKind(t *testing.T) {
	cmd, _ := newTestCommand(t)
	register(t, cmd)

	path := filepath.Join(t.TempDir(), "set.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units:\n  - kind: hovercraft\n    rego: HOV1\n"), 0o600))

	out, err := execute(cmd, "vehicle", "import", path)
	require.Error(t, err)
	assert.Contains(t, out, "unknown kind")
}

func TestJSONOutput(t *testing.T) {
	cmd, _ := newTestCommand(t)

	out, err := execute(cmd, "--format", "json", "register", "--first", "Jane", "--last", "Doe",
		"--email", "jane@haulory.test", "--password", "s3cret")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "jane@haulory.test", resp.Data.Email)

	// Duplicate registration comes back as a coded JSON error.
	out, err = execute(cmd, "--format", "json", "register", "--first", "Jane", "--last", "Doe",
		"--email", "jane@haulory.test", "--password", "s3cret")
	require.Error(t, err)
	var errResp struct {
		Status string `json:"status"`
		Error  struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &errResp))
	assert.Equal(t, "error", errResp.Status)
	assert.Equal(t, "IDENTITY_VIOLATION", errResp.Error.Code)
}

func TestNotLoggedInExitCode(t *testing.T) {
	cmd, _ := newTestCommand(t)

	_, err := execute(cmd, "job", "list")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
