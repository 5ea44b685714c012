package model

// Centralized markers for table output and stored records
const (
	Sentinel  = "--"        // Placeholder for fields that do not apply to directories
	DirMarker = "/"         // Appended to directory names when rendered
	TypeDir   = "directory" // Type field value for directories
	TypeFile  = "file"      // Type field value when content detection finds nothing
)

// Version of the pigeonhole CLI.
const Version = "0.1.0"

// AppName is used for the config directory and version output.
const AppName = "pigeonhole"
