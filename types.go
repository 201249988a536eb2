package main

// SourceDocument is an exported Markdown document and the metadata derived from it
type SourceDocument struct {
	Path        string
	Filename    string
	Content     string
	Slug        string
	Title       string
	Date        string
	Description string
	Tags        []string
}

// AssetFile is a supported file inside a document's asset folder
type AssetFile struct {
	SourcePath string
	Original   string
	Normalized string
	Ext        string
	IsImage    bool
}

// FileMapping maps original asset filenames to their normalized names
type FileMapping map[string]string

// AssetResult is the outcome of processing a document's asset folder
type AssetResult struct {
	Folder  string
	Files   []AssetFile
	Mapping FileMapping
	Cover   string
}

// OutputDocument is one locale variant of an ingested document
type OutputDocument struct {
	Title       string
	Description string
	Date        string
	Tags        []string
	Cover       string
	Lang        string
	Draft       bool
	Marker      string
	Body        string
	Path        string
}

// ProcessingStatus represents the outcome status of processing a document
type ProcessingStatus string

const (
	StatusSuccess ProcessingStatus = "success"
	StatusError   ProcessingStatus = "error"
)

// ProcessingResult tracks the outcome of processing each document
type ProcessingResult struct {
	Path        string
	Status      ProcessingStatus
	Slug        string
	Title       string
	Tags        []string
	AssetsCount int
	Assets      []string
	Outputs     []string
	Error       error
}

// Summary aggregates the results of an ingestion run
type Summary struct {
	Results     []ProcessingResult
	Processed   int
	Failed      int
	AssetsCount int
}
