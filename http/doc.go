// Package http exposes a directory archive over HTTP.
//
// # Routes
//
//	GET /download    tar archive of the configured root directory
//
// A successful download is answered with 200, Content-Type application/x-tar
// and, when a prefix is configured, Content-Disposition
// "attachment; filename=<prefix>.tar".
//
// # Errors
//
// Failures are reported as JSON with status 500:
//
//	{"code": 500, "message": "tar error: open /srv/files: no such file or directory"}
//
// A *dirtar.Error of KindDirectoryIO is reported as "tar error: <detail>",
// KindResponseConstruction as "response error: <detail>". Everything else,
// including unknown routes, wrong methods and handler panics, is reported as
// "UNHANDLED_REJECTION" with the detail written to the log only.
//
// # Buffered and streamed responses
//
// By default the archive is built in memory first, so a client never receives
// a truncated archive. With HandlerConfig.Stream the archive is written to the
// client as it is produced; a failure to list the root still yields the JSON
// error because nothing has been sent at that point.
//
// # Usage
//
//	archiver := dirtar.NewArchiver(afero.NewReadOnlyFs(afero.NewOsFs()), logger)
//	handler := http.NewHandler(&http.HandlerConfig{
//	    Root:   "/srv/files",
//	    Prefix: "files",
//	}, archiver, logger)
//	router := handler.Router()
package http
