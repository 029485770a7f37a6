// Package macperm checks whether a macOS program holds the Accessibility,
// Screen Recording and Full Disk Access privacy permissions, and keeps a
// permission panel on screen until the user grants them.
//
// # Basic Usage
//
// Describe the permissions the program needs and start monitoring:
//
//	m := macperm.NewManager(
//	    macperm.WithPanelFactory(termpanel.Factory{}),
//	    macperm.WithTutorialLink("https://example.com/how-to-grant"),
//	    macperm.OnAllGranted(func() { log.Println("ready") }),
//	)
//	m.Monitor([]macperm.Request{
//	    macperm.NewRequest(macperm.Accessibility, "Used to move windows"),
//	    macperm.NewRequest(macperm.ScreenCapture, "Used to show window thumbnails"),
//	}, 0)
//	if err := m.Run(ctx); errors.Is(err, macperm.ErrQuit) {
//	    os.Exit(0)
//	}
//
// # Monitoring Modes
//
// With an interval of zero the Manager checks every second and shows the panel
// as soon as anything is missing; once everything is granted it stops and
// closes the panel.
//
// OnAllGranted runs only when a panel is dismissed. Callers that need to
// know whether everything is already granted can ask first:
//
//	if macperm.AllGranted(macperm.Evaluate(oracle, requests)) {
//	    // nothing to show
//	}
//
// With an interval of N seconds the Manager re-checks every N seconds and only
// shows the panel after three consecutive failed checks, which hides the brief
// false negatives the TCC APIs report right after a permission changes. The
// panel is dismissed when a later check succeeds; monitoring continues.
//
// # One-shot Checks
//
//	if !macperm.Check(ctx, macperm.FullDisk) {
//	    // the user was offered to open System Settings
//	}
//
// # Environment Variables
//
//	MACPERM_DEBUG=1          log state machine decisions to stderr
//	MACPERM_APP_NAME=MyApp   name shown in panel titles and alerts
//	MACPERM_BUNDLE_ID=id     client identifier used by Reset
//
// The macperm command also reads MACPERM_INTERVAL, MACPERM_THRESHOLD,
// MACPERM_TUTORIAL_LINK, MACPERM_PERMISSIONS, MACPERM_LOG_LEVEL and
// MACPERM_LOG_FILE as overrides for its configuration file.
package macperm
