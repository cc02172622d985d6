//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	fb := newFakeBackend(t)
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.UseBackend(fb.URL())
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should show the sign-in form")

	require.NoError(t, tf.SignIn("ada@example.com", "Sup3r-secret"))
	require.True(t, tf.SeePlain("example.com"), "Should list domains after sign-in")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	t.Logf("Sending 'q' to quit application...")
	require.NoError(t, tf.Quit())

	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "Process should exit cleanly with 'q'")
		tf.cmd = nil
	case <-time.After(3 * time.Second):
		tf.DumpTailOnFail(t, "exit", 4096)
		t.Fatal("Application did not exit after 'q'")
	}
}

func TestCtrlCQuitsFromSignIn(t *testing.T) {
	t.Parallel()
	fb := newFakeBackend(t)
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.UseBackend(fb.URL())
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	// q would be typed into the email field here
	require.NoError(t, tf.SendCtrlC())

	select {
	case <-done:
		tf.cmd = nil
	case <-time.After(3 * time.Second):
		t.Fatal("Application did not exit after Ctrl+C")
	}
}
