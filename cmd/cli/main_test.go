package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	id := uuid.New()

	cmd, err := parseArgs([]string{"balance", id.String()})
	require.NoError(t, err)
	assert.Equal(t, "balance", cmd.name)
	assert.Equal(t, id, cmd.accountID)

	cmd, err = parseArgs([]string{"create-admin", "-email", "root@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", cmd.email)
	assert.Equal(t, "Admin", cmd.firstName)

	cmd, err = parseArgs([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", cmd.name)

	for _, args := range [][]string{
		nil,
		{"deposit"},
		{"balance"},
		{"clear", "not-a-uuid"},
		{"create-admin"},
		{"create-admin", "-unknown"},
	} {
		_, err := parseArgs(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestReadPassword_FromPipe(t *testing.T) {
	var out bytes.Buffer
	password, err := readPassword(strings.NewReader("s3cret-pass\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", password)

	_, err = readPassword(strings.NewReader(""), &out)
	assert.Error(t, err)
}
