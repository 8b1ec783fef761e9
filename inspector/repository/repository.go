package repository

// Project represents information about a detected crate
type Project struct {
	RootPath     string // Absolute path to the crate root directory
	Type         string // Type of project (rust or unknown)
	Name         string // Package name from Cargo.toml
	RelativePath string // Path from project root to the specified file
}
