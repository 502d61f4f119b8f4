package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/parking-zones/internal/mapgen"
	"github.com/sells-group/parking-zones/internal/osm"
)

// executeRoot runs the root command in a fresh temp dir and restores the
// flag state afterwards.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return dir, out.String(), err
}

func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	serveCmd.Flags().VisitAll(reset)
	rootCmd.SetArgs(nil)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "zones", "tiles"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "parking-zones", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_FlagDefaults(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"lat", "", "45.38096"},
		{"lon", "", "20.39373"},
		{"output", "o", "parking_map.html"},
		{"tile-provider", "t", "openstreetmap"},
		{"radius", "", "0"},
		{"place", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "root command should have --%s flag", tt.name)
			assert.Equal(t, tt.def, flag.DefValue)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}

	verbose := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("zones-file"))
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestRoot_InvalidLatitude(t *testing.T) {
	dir, _, err := executeRoot(t, "--lat", "200", "-o", "map.html")

	require.Error(t, err)
	assert.Equal(t, mapgen.KindInput, mapgen.KindOf(err))
	assert.Equal(t, 2, mapgen.ExitCode(err))
	assert.NoFileExists(t, filepath.Join(dir, "map.html"))
}

func TestRoot_InvalidRadius(t *testing.T) {
	dir, _, err := executeRoot(t, "--radius", "-5")

	require.Error(t, err)
	assert.Equal(t, 2, mapgen.ExitCode(err))
	assert.NoFileExists(t, filepath.Join(dir, "parking_map.html"))
}

func TestRoot_UnknownTileProvider(t *testing.T) {
	dir, _, err := executeRoot(t, "-t", "stamen-watercolor")

	require.Error(t, err)
	assert.Equal(t, mapgen.KindConfiguration, mapgen.KindOf(err))
	assert.Equal(t, 4, mapgen.ExitCode(err))
	assert.Contains(t, err.Error(), "unsupported tile provider")
	assert.NoFileExists(t, filepath.Join(dir, "parking_map.html"))
}

func TestRoot_MissingZonesFile(t *testing.T) {
	_, _, err := executeRoot(t, "--zones-file", "does-not-exist.yaml")

	require.Error(t, err)
	assert.Equal(t, 4, mapgen.ExitCode(err))
}

func TestRoot_ZoneWithoutStreets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zones:\n  - id: red\n    label: Red\n    color: \"#FF0000\"\n"), 0o644))

	_, _, err := executeRoot(t, "--zones-file", path)

	require.Error(t, err)
	assert.Equal(t, mapgen.KindConfiguration, mapgen.KindOf(err))
	assert.Contains(t, err.Error(), "lists no streets")
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	_, _, err := executeRoot(t, "zrenjanin")
	require.Error(t, err)
	assert.Equal(t, 1, mapgen.ExitCode(err))
}

func TestErrorMessage(t *testing.T) {
	plain := &mapgen.Error{Kind: mapgen.KindInput, Op: "validate request", Err: assert.AnError}
	assert.Equal(t, "Error: "+plain.Error(), errorMessage(plain))

	transient := &mapgen.Error{Kind: mapgen.KindDataFetch, Op: "fetch streets", Err: assert.AnError, Transient: true}
	msg := errorMessage(transient)
	assert.Contains(t, msg, "DataFetchError")
	assert.Contains(t, msg, "try again")
	assert.NotContains(t, msg, "HTTP")
}

func TestErrorMessage_IncludesHTTPStatus(t *testing.T) {
	cause := &osm.TransientError{Service: "overpass", StatusCode: 429, Err: eris.New("osm: overpass returned status 429")}
	err := &mapgen.Error{
		Kind:      mapgen.KindDataFetch,
		Op:        "fetch streets",
		Err:       eris.Wrap(cause, "mapgen: street data unavailable"),
		Transient: true,
	}

	msg := errorMessage(err)
	assert.Contains(t, msg, "(overpass HTTP 429)")
	assert.Contains(t, msg, "try again")
}
