package logger

// Component-specific logger functions

// Schema returns a logger for schema registry operations
func Schema() Logger {
	return WithField("component", "schema")
}

// DB returns a logger for database connection operations
func DB() Logger {
	return WithField("component", "db")
}

// Storage returns a logger for generic record storage operations
func Storage() Logger {
	return WithField("component", "storage")
}

// Report returns a logger for aggregation and reporting operations
func Report() Logger {
	return WithField("component", "report")
}

// CLI returns a logger for CLI operations
func CLI() Logger {
	return WithField("component", "cli")
}
