package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-VCFEdit/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go VCF Edit"
	AppID             = "com.github.tartampluch.go-vcfedit"
	CommandName       = "go-vcfedit"
	KeyringService    = "com.github.tartampluch.go-vcfedit"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported contact files.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug       = "debug"
	FlagLang        = "lang"
	FlagConfigDir   = "config-dir"
	FlagVersion     = "vcard-version"
	FlagOutput      = "output"
	FlagCountryCode = "country-code"
	FlagURL         = "url"
	FlagUser        = "user"
	FlagPort        = "port"
	FlagLevel       = "level"

	FlagDescDebug       = "Enable debug logging"
	FlagDescLang        = "Language used for labels and messages (%s)"
	FlagDescConfigDir   = "Directory holding config.yaml"
	FlagDescVersion     = "Target vCard version (2.1, 3.0, 4.0)"
	FlagDescOutput      = "Write output to this file instead of stdout"
	FlagDescCountryCode = "Prefix phone numbers lacking a country code (e.g. +33)"
	FlagDescURL         = "Remote URL of a VCF export (CardDAV/WebDAV)"
	FlagDescUser        = "Basic auth user for remote import"
	FlagDescPort        = "Port of the publishing server"
	FlagDescLevel       = "QR error correction level (L or M)"

	FlagUpcoming        = "upcoming"
	FlagDescUpcoming    = "List upcoming dates instead of writing the iCalendar feed"
	FlagDescImportVCF   = "Write the imported cards as VCF instead of JSON"
	FlagVCFOutput       = "vcf"
	FlagDescServeSource = "Remote URL to publish instead of a local file"
	FlagShortOutput     = "o"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgCLIError      = "Error: %v\n"
)

// -----------------------------------------------------------------------------
// CLI Commands
// -----------------------------------------------------------------------------

const (
	CmdParse    = "parse [file]"
	CmdGenerate = "generate [file]"
	CmdConvert  = "convert [file]"
	CmdValidate = "validate [file]"
	CmdLint     = "lint [file]"
	CmdQR       = "qr [file]"
	CmdShow     = "show [file]"
	CmdCalendar = "calendar [file...]"
	CmdServe    = "serve [file]"
	CmdImport   = "import [file]"
	CmdLogin    = "login"
	CmdVersion  = "version"

	CmdDescRoot     = "Edit contact records and convert them to and from vCard 2.1, 3.0 and 4.0"
	CmdDescParse    = "Parse a VCF document into a JSON contact record"
	CmdDescGenerate = "Generate a VCF document from a JSON contact record"
	CmdDescConvert  = "Re-encode a VCF document at another vCard version"
	CmdDescValidate = "Check that a VCF document decodes as a well formed vCard"
	CmdDescLint     = "Report suspicious field values of a contact"
	CmdDescQR       = "Report how much of a QR code the generated vCard would fill"
	CmdDescShow     = "Print a localized summary of a contact"
	CmdDescCalendar = "Export birthdays and anniversaries as a yearly iCalendar feed"
	CmdDescServe    = "Publish the contact as .vcf and .ics over HTTP"
	CmdDescImport   = "Import every card of an address book export"
	CmdDescLogin    = "Store the remote import password in the OS keyring"
	CmdDescVersion  = "Print version information"

	// StdinArg names standard input where a file is expected.
	StdinArg = "-"

	JSONIndent      = "  "
	FormatShowLine  = "%-16s %s\n"
	FormatShowItem  = "%-16s %s (%s)\n"
	FormatLintLine  = "%s: %s (%q)\n"
	FormatUpcoming  = "%s  %s"
	FormatAgeSuffix = "  (%s)"
)

// -----------------------------------------------------------------------------
// Runtime Settings (config.yaml / environment)
// -----------------------------------------------------------------------------

const (
	SettingsFileName = "config"
	SettingsFileType = "yaml"
	SettingsEnvPref  = "VCFEDIT"

	SetKeyDefaultVersion = "default_version"
	SetKeyLanguage       = "language"
	SetKeyServerPort     = "server_port"
	SetKeyQRLevel        = "qr_level"
	SetKeyCountryCode    = "country_code"
	SetKeyUser           = "user"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb      = "web"
	SourceModeLocal    = "local"
	DefaultPort        = "18081"
	DefaultLanguage    = "en"
	DefaultQRLevel     = "M"
	DefaultLeapYear    = 2000 // Leap year fallback for dates like --02-29
	UIDSalt            = "go-vcfedit-v1-"
)

// -----------------------------------------------------------------------------
// Standards: vCard
// -----------------------------------------------------------------------------

const (
	VCardBegin = "BEGIN:VCARD"
	VCardEnd   = "END:VCARD"

	VCardVersion21 = "2.1"
	VCardVersion30 = "3.0"
	VCardVersion40 = "4.0"

	// VCardProdid is stamped on every generated card.
	VCardProdid = "-//Go VCF Edit//Codec//EN"

	// VCardUnnamed is the FN used when no name part is set.
	VCardUnnamed = "Unnamed"

	VCardUIDScheme  = "urn:uuid:"
	VCardGeoScheme  = "geo:"
	VCardRevFormat  = "20060102T150405Z"
	VCardLineEnding = "\r\n"

	// Folding limits, counted in characters.
	VCardFoldLimit     = 75
	VCardFoldContLimit = 74
	VCardFoldPrefix    = " "

	VCardCustomPrefix = "X-"

	// Property names.
	PropBegin       = "BEGIN"
	PropEnd         = "END"
	PropVersion     = "VERSION"
	PropFN          = "FN"
	PropN           = "N"
	PropNickname    = "NICKNAME"
	PropPhoto       = "PHOTO"
	PropBday        = "BDAY"
	PropAnniversary = "ANNIVERSARY"
	PropGender      = "GENDER"
	PropOrg         = "ORG"
	PropTitle       = "TITLE"
	PropRole        = "ROLE"
	PropLogo        = "LOGO"
	PropEmail       = "EMAIL"
	PropTel         = "TEL"
	PropIMPP        = "IMPP"
	PropAdr         = "ADR"
	PropURL         = "URL"
	PropGeo         = "GEO"
	PropTZ          = "TZ"
	PropCategories  = "CATEGORIES"
	PropNote        = "NOTE"
	PropProdid      = "PRODID"
	PropRev         = "REV"
	PropUID         = "UID"
	PropCalURI      = "CALURI"
	PropCalAdrURI   = "CALADRURI"
	PropFBURL       = "FBURL"
	PropKey         = "KEY"
	PropRelated     = "RELATED"
	PropLang        = "LANG"

	// Parameter fragments.
	ParamType         = "TYPE="
	ParamTypeInternet = "TYPE=INTERNET,"
	ParamValueURI     = "VALUE=URI"
	ParamPhotoBinary  = "ENCODING=b;TYPE=JPEG"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go VCF Edit//Calendar//EN"
	ICalCalName = "Contacts"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "go-vcfedit"
	ICalYearly  = "FREQ=YEARLY"

	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRRule      = "RRULE"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"
	PropRefresh    = "REFRESH-INTERVAL"

	// DefaultICalRefresh is the refresh interval suggested to subscribers (RFC 7986).
	DefaultICalRefresh = 24 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// QR byte capacities (binary mode).
	QRMaxBytesLevelM    = 2331
	QRMaxBytesLevelL    = 2953
	QRWarningThreshold  = 0.8
	QRMsgUsage          = "%s / %s bytes used"
	QRMsgApproaching    = "Approaching QR capacity limit. %s bytes remaining."
	QRMsgExceeded       = "Data exceeds QR capacity by %s bytes. Consider removing some fields."
	MaxPhotoDataURISize = 1024 * 1024 // 1MB decoded

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s|%s"
	FormatUID       = "%s@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteContactVCF     = "/contact.vcf"
	RouteContactICS     = "/contact.ics"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrImportFailed    = "import failed"
	ErrReadFailed      = "could not read input"
	ErrNotText         = "input is not valid UTF-8 text"
	ErrInvalidVersion  = "unsupported vCard version"
	ErrMalformed       = "malformed vCard"
	ErrMissingVersion  = "VERSION property missing"
	ErrMissingFN       = "FN property missing"
	ErrMissingN        = "N property missing"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrConfigDir       = "could not determine user config dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrSettingsRead    = "failed to read settings"
	ErrJSONDecode      = "failed to decode contact JSON"
	ErrJSONEncode      = "failed to encode contact JSON"
	ErrWriteOutput     = "failed to write output"
	ErrCredentialStore = "failed to store credentials"
	ErrNoRecords       = "no contact found in input"
	ErrCountryCode     = "country code must be \"+\" followed by 1 to 4 digits"
	ErrRequestBuild    = "failed to create request"
	ErrNetwork         = "network error during fetch"
	ErrHTTPStatus      = "server returned unexpected status"
	ErrTooLarge        = "response exceeds the size limit"
	ErrCredentialRead  = "failed to read credentials"
	ErrRouteUnknown    = "route is not published"
	ErrQRLevel         = "unsupported QR error correction level (L or M)"
	ErrLintIssues      = "contact has lint issues"
	ErrPasswordRead    = "failed to read password"
	ErrUserRequired    = "a user is required (--user or settings)"
	ErrQRCapacity      = "document exceeds QR capacity"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Document initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackBirthday    = "Birthday: %s"
	FallbackAnniversary = "Anniversary: %s"

	MsgAppStop        = "Application stopped gracefully"
	MsgAppStarting    = "Starting application"
	MsgImportStarted  = "Import started"
	MsgImportFinished = "Import finished"
	MsgCardParsed     = "Card parsed"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedEmpty   = "Skipping vCard without content"
	MsgCountryCode    = "Phone numbers rewritten with country code"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgDroppedProp    = "Dropping unsupported property"
	MsgNoColon        = "Dropping line without value separator"
	MsgGenSuccess     = "Calendar generation successful"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Document cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgSettingsNone   = "No settings file found, using defaults"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchBody      = "vCards downloading"
	MsgPassStored     = "Password stored in keyring"
	MsgLocaleUnknown  = "Unsupported language, falling back to default"
	MsgServePublished = "Documents published"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeySupported = "supported"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyRoute     = "route"
	LogKeyTotal     = "total_cards"
	LogKeyParsed    = "parsed_cards"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyProperty  = "property"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyVersion   = "version"
	LogKeyDuration  = "duration_ms"
	LogKeyName      = "name"
	LogKeyLength    = "content_length"
	LogKeyCommand   = "command"
	LogKeyCommit    = "commit"
	LogKeyDate      = "date"

	// Startup Info Keys
	LogKeyBuild = "build"
	LogKeyApp   = "app"
	LogKeyGoVer = "go_version"
	LogKeyEnv   = "env"
	LogKeyOS    = "os"
	LogKeyArch  = "arch"
	LogKeyPID   = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompCodec    = "codec"
	CompEngine   = "engine"
	CompFetcher  = "fetcher"
	CompCalendar = "calendar"
	CompServer   = "server"
	CompMain     = "main"
	CompCLI      = "cli"
	CompI18n     = "i18n"
	CompSettings = "settings"
)

// -----------------------------------------------------------------------------
// Translation Keys (i18n)
// -----------------------------------------------------------------------------

const (
	// Field labels used by the "show" command.
	TKeyLblName         = "lbl_name"
	TKeyLblNickname     = "lbl_nickname"
	TKeyLblBirthday     = "lbl_birthday"
	TKeyLblAnniversary  = "lbl_anniversary"
	TKeyLblGender       = "lbl_gender"
	TKeyLblOrganization = "lbl_organization"
	TKeyLblTitle        = "lbl_title"
	TKeyLblRole         = "lbl_role"
	TKeyLblEmail        = "lbl_email"
	TKeyLblPhone        = "lbl_phone"
	TKeyLblIMPP         = "lbl_impp"
	TKeyLblAddress      = "lbl_address"
	TKeyLblURL          = "lbl_url"
	TKeyLblRelated      = "lbl_related"
	TKeyLblLanguages    = "lbl_languages"
	TKeyLblTimezone     = "lbl_timezone"
	TKeyLblGeo          = "lbl_geo"
	TKeyLblCategories   = "lbl_categories"
	TKeyLblNote         = "lbl_note"
	TKeyLblCustom       = "lbl_custom"

	// Event summaries (templates with {{.Name}}).
	TKeyEvtBirthday    = "event_birthday"
	TKeyEvtAnniversary = "event_anniversary"

	// Command output.
	TKeyQRUsage       = "qr_usage"       // {{.Used}}, {{.Max}}
	TKeyQRExceeded    = "qr_exceeded"    // {{.Over}}
	TKeyQRApproaching = "qr_approaching" // {{.Remaining}}
	TKeyLintClean     = "lint_clean"
	TKeyValidOK       = "valid_ok"
	TKeyImported      = "imported" // {{.Count}}
	TKeyUpcoming      = "upcoming"
	TKeyAgeNext       = "age_next" // {{.Age}}
)

// TKeyPrefix* build the labels of enum values: prefix + value, e.g. "phone_cell".
const (
	TKeyPrefixPhone   = "phone_"
	TKeyPrefixEmail   = "email_"
	TKeyPrefixAddress = "address_"
	TKeyPrefixURL     = "url_"
	TKeyPrefixIMPP    = "impp_"
	TKeyPrefixRelated = "related_"
	TKeyPrefixGender  = "gender_"
	TKeyPrefixLint    = "lint_"

	// TKeyGenderUnset labels the empty gender value.
	TKeyGenderUnset = "gender_unset"
)
