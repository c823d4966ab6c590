package sessions_test

// Blank import from the external test package so the shared test-mode setup
// runs without creating an import cycle through internal/app.
import _ "github.com/lotus-studio/lotus/testing"
