package main

const (
	// envPath names the directory to analyze when no argument is given.
	envPath = "DIRCOUNT_PATH"

	exitOK    = 0
	exitError = 1
)
