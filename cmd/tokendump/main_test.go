package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 200 OK response with no headers
const okResponseHex = "b8 00c8 13 b2"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeHex(t *testing.T) {
	out, err := run(t, "decode", okResponseHex)
	require.NoError(t, err)
	assert.Contains(t, out, "SIP/2.0 200 OK\r\n")
}

func TestDecodeFileEvents(t *testing.T) {
	p := filepath.Join(t.TempDir(), "msg.bin")
	require.NoError(t, os.WriteFile(p, []byte{0xF0, 0xB8, 0x00, 0xC8, 0x13, 0xB2}, 0o644))

	out, err := run(t, "decode", "--file", p, "--events")
	require.NoError(t, err)
	assert.Contains(t, out, "message dict=1/com.sprintpcs/1 response SIP/2.0 200 OK\n")
	assert.Contains(t, out, "end\n")
}

func TestDecodeMetrics(t *testing.T) {
	out, err := run(t, "decode", "--metrics", okResponseHex)
	require.NoError(t, err)
	assert.Contains(t, out, `token_decoder_messages_total{result="ok"} 1`)
}

func TestDecodeVerify(t *testing.T) {
	out, err := run(t, "decode", "--verify", okResponseHex)
	require.NoError(t, err)
	assert.Contains(t, out, "verify: ok\n")

	// 200 OK with application/sdp body "bad"
	badSDP := "b8 00c8 13 b5 960f6170706c69636174696f6e2f736470 00 626164"
	out, err = run(t, "decode", badSDP)
	require.NoError(t, err, "sdp is checked only with --verify")
	assert.Contains(t, out, "\r\n\r\nbad")

	_, err = run(t, "decode", "--verify", badSDP)
	require.ErrorContains(t, err, "invalid sdp body")
}

func TestDecodeErrors(t *testing.T) {
	_, err := run(t, "decode")
	require.Error(t, err)

	_, err = run(t, "decode", "zz")
	require.Error(t, err)

	_, err = run(t, "decode", "f0b7")
	require.Error(t, err)

	_, err = run(t, "decode", "--file", filepath.Join(t.TempDir(), "none.bin"))
	require.Error(t, err)
}

func TestSignature(t *testing.T) {
	out, err := run(t, "signature", "1/com.sprintpcs/1")
	require.NoError(t, err)
	assert.Equal(t, "0xF80D\n", out)
}

func TestDictsWithConfig(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "example.yaml")
	require.NoError(t, os.WriteFile(dict, []byte("name: 2/org.example/1\nprimary: [hello]\n"), 0o644))
	cfg := filepath.Join(dir, "tokendump.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("dictionaries:\n  - "+dict+"\n"), 0o644))

	out, err := run(t, "--config", cfg, "dicts")
	require.NoError(t, err)
	assert.Contains(t, out, "0xF80D 1/com.sprintpcs/1")
	assert.Contains(t, out, "0x5535 2/org.example/1 entries=1")
}
