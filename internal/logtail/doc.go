// Package logtail reads the end of ticklist's log file for the logs command.
//
// Read uses a ring buffer, so it makes one pass over the file and keeps at
// most maxLines in memory regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 50)
//	if err != nil {
//		return err
//	}
//	return logtail.Print(os.Stdout, lines, isTerminal)
//
// Print renders the JSON events written by internal/logging through
// zerolog's ConsoleWriter, so the output matches what a console logger
// would have shown.
package logtail
