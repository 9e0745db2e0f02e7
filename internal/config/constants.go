package config

// Default locations for the application database
const (
	// AppName names the per-user application data directory
	AppName = "techshop"

	// DefaultDatabaseName is the file name of the application database
	DefaultDatabaseName = "techShop.db3"

	// DefaultDatabaseDriver selects the cgo SQLite engine
	DefaultDatabaseDriver = "mattn"
)
