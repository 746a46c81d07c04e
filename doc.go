// Package dirtar turns a directory into a tar stream.
//
// The Archiver lists the direct children of a root directory and writes every
// regular file it finds as a tar member named by its path relative to the root.
// Directories, symlinks and other special files are skipped. Problems with a
// single entry are logged and skipped so one unreadable file never aborts the
// whole archive; only a failure to list the root or to finalize the stream is
// returned, as an *Error of KindDirectoryIO.
//
// # Example Usage
//
//	archiver := dirtar.NewArchiver(afero.NewReadOnlyFs(afero.NewOsFs()), logger)
//
//	var buf bytes.Buffer
//	result, err := archiver.Archive(ctx, "/srv/files", &buf)
//	if err != nil {
//	    return err
//	}
//	logger.Info("archive ready", "entries", result.Entries, "skipped", result.Skipped)
//
// See the http package for the download endpoint and the server package for
// the listener lifecycle.
package dirtar
