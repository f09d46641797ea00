package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the run summary.
	OutputMode string

	// AmbiguityPolicy decides what happens when several files match one role.
	AmbiguityPolicy string

	// CountStatus explains where a count came from.
	CountStatus string

	// Role is the classification assigned to a file inside a week folder.
	Role string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All ambiguity policies supported.
const (
	LastWinsPolicy AmbiguityPolicy = "last" // default
	StrictPolicy   AmbiguityPolicy = "strict"
)

// All count statuses.
const (
	CountedStatus      CountStatus = "counted"
	MissingStatus      CountStatus = "missing"
	FailedStatus       CountStatus = "failed"
	UnconfiguredStatus CountStatus = "unconfigured"
)

// All artifact roles.
const (
	TaskRole         Role = "task"
	SolutionRole     Role = "solution"
	UnclassifiedRole Role = "unclassified"
)

// Progress labels shown next to each week.
const (
	UnknownLabel = "Unknown"
	OverLabel    = "Over"
	DoneLabel    = "Done"
	EmptyLabel   = "Empty"
	OpenLabel    = "Open"
)

// AnchorLayout is the directory name format of week folders.
const AnchorLayout = "2006-01-02"

// Week anchor keywords accepted by the week setting.
const (
	LastWeekAnchor = "last" // default
	NextWeekAnchor = "next"
)

// DefaultChartFile is the image written into every scanned week folder.
const DefaultChartFile = "todo.png"

// DefaultSolutionMarker opens one exercise block inside a solution document.
const DefaultSolutionMarker = "begin{exercise}"

// DefaultTaskIdentifiers are file name fragments of exercise sheets.
var DefaultTaskIdentifiers = []string{"ub", "uebungsblatt"}

// DefaultSolutionIdentifiers are file name fragments of solution documents.
var DefaultSolutionIdentifiers = []string{".tex"}

// DefaultTaskMarkers are the exercise numbering tokens of a sheet, compared
// after whitespace removal and lower-casing.
var DefaultTaskMarkers = []string{
	"aufgabe1(",
	"aufgabe2(",
	"aufgabe3(",
	"aufgabe4(",
	"aufgabe1.",
	"aufgabe2.",
	"aufgabe3.",
	"aufgabe4.",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidAmbiguityPolicies lists all valid ambiguity policies.
var ValidAmbiguityPolicies = map[AmbiguityPolicy]struct{}{
	LastWinsPolicy: {},
	StrictPolicy:   {},
}
