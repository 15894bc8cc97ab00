package app

import (
	"github.com/veritab/veritab/internal/appcontext"
)

// Interface is an alias to the shared appcontext.Interface.
// Commands should accept appcontext.Interface; this alias keeps the
// app package self-describing about what it implements.
type Interface = appcontext.Interface

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
