// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// InvalidPathError reports an unusable input or output directory.
type InvalidPathError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid path %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid path %s: %s", e.Path, e.Reason)
}

func (e *InvalidPathError) Unwrap() error { return e.Err }

// RenderError reports a page that could not be rasterized. Page is -1
// when the document itself could not be opened.
type RenderError struct {
	Path string
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("rendering %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("rendering %s page %d: %v", e.Path, e.Page+1, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// OcrError reports a failed recognition call.
type OcrError struct {
	Path string
	Page int
	Err  error
}

func (e *OcrError) Error() string {
	return fmt.Sprintf("recognizing %s page %d: %v", e.Path, e.Page+1, e.Err)
}

func (e *OcrError) Unwrap() error { return e.Err }

// WriteError reports an output PDF or report that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
