package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path of the route group.
	RootPath = "/"

	// RouterRootPath is the root path within a registered route group.
	RouterRootPath = "/"

	// ErrNilACDFatalLogMsg is used if the app, cfg, db or registry pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg, db or registry is nil"
)
