package logging_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/safisaude-console/internal/logging"
)

func TestSetupLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logging.Setup("PROD", "debug")
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logging.Setup("DEV", "nonsense")
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logging.Setup("DEV", "")
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
