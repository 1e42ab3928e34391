// Package web holds the browser shell, the page fragments and the stylesheet.
package web

import "embed"

//go:embed layout.html pages/*.html static/*
var Assets embed.FS
