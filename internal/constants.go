package internal

const ApplicationName = "bomweave"
