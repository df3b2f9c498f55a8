package cmd

import "github.com/ardnew/inflate/pkg"

var (
	ErrNoObject    = pkg.NewError("document declares no object")
	ErrQuery       = pkg.NewError("evaluate query")
	ErrWriteOutput = pkg.NewError("write output")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)
