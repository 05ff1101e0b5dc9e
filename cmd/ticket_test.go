package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gherkinstub/internal/tickets"
)

func addTicket(t *testing.T, key, title, text string) {
	t.Helper()
	require.NoError(t, RunTicketAdd(io.Discard, strings.NewReader(text), key, title, ""))
}

func TestTicketAdd_FromStdin(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	require.NoError(t, RunTicketAdd(&buf, strings.NewReader(loginFeature), "LOGIN-1", "Login", ""))
	assert.Equal(t, "LOGIN-1 saved\n", buf.String())
}

func TestTicketAdd_FromFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("login.feature", []byte(loginFeature), 0o644))

	require.NoError(t, RunTicketAdd(io.Discard, strings.NewReader(""), "LOGIN-1", "Login", "login.feature"))

	var buf bytes.Buffer
	require.NoError(t, RunTicketShow(&buf, "LOGIN-1"))
	assert.Contains(t, buf.String(), "User logs in")
	assert.Contains(t, buf.String(), "from login.feature")
}

func TestTicketAdd_RequiresInit(t *testing.T) {
	inTempDir(t)

	err := RunTicketAdd(io.Discard, strings.NewReader(loginFeature), "LOGIN-1", "Login", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gherkinstub init")
}

func TestTicketList(t *testing.T) {
	inTempDir(t)
	runInit(t)
	addTicket(t, "SIGNUP-12", "Signup", "Feature: Signup\n")
	addTicket(t, "LOGIN-1", "Login", loginFeature)

	var buf bytes.Buffer
	require.NoError(t, RunTicketList(&buf))

	out := buf.String()
	assert.Contains(t, out, "LOGIN-1")
	assert.Contains(t, out, "Signup")
	assert.Less(t, strings.Index(out, "LOGIN-1"), strings.Index(out, "SIGNUP-12"))
}

func TestTicketList_Empty(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	require.NoError(t, RunTicketList(&buf))
	assert.Empty(t, buf.String())
}

func TestTicketShow(t *testing.T) {
	inTempDir(t)
	runInit(t)
	addTicket(t, "LOGIN-1", "Login", loginFeature)

	var buf bytes.Buffer
	require.NoError(t, RunTicketShow(&buf, "LOGIN-1"))

	out := buf.String()
	assert.Contains(t, out, "LOGIN-1")
	assert.Contains(t, out, "Login")
	assert.Contains(t, out, "a registered user")
	assert.NotContains(t, out, "from ")
}

func TestTicketShow_NotFound(t *testing.T) {
	inTempDir(t)
	runInit(t)

	err := RunTicketShow(io.Discard, "NOPE-1")
	assert.ErrorIs(t, err, tickets.ErrNotFound)
}

func TestTicketRm(t *testing.T) {
	inTempDir(t)
	runInit(t)
	addTicket(t, "LOGIN-1", "Login", loginFeature)

	var buf bytes.Buffer
	require.NoError(t, RunTicketRm(&buf, "LOGIN-1"))
	assert.Equal(t, "LOGIN-1 removed\n", buf.String())
	assert.ErrorIs(t, RunTicketShow(io.Discard, "LOGIN-1"), tickets.ErrNotFound)
}
