package log

const (
	// Ident of an unconfigured logger.
	defaultIdent = "?"

	// Wall-clock layout of the file-sink timestamp, millisecond precision.
	timestampLayout = "2006-01-02 15:04:05.000"

	// Syslog message bodies longer than this are truncated.
	syslogMsgLimit = 255

	// Stack frames between a direct Logger method and the user call site.
	skipDirect = 2
)
