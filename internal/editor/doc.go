// Package editor is the editing surface that drives the lasso tools.
//
// An Editor owns one canvas host, one undo history, the edge map of the
// image being edited, and at most one active lasso session. The active tool
// is an explicit lasso.ToolKind; switching tools cancels whatever trace was
// in progress before the next session is constructed.
//
// Pointer events are routed to the active session:
//
//	Tool        PointerDown   PointerMove    PointerUp
//	freehand    Start         Continue       Complete(autoClose)
//	polygonal   AddPoint      UpdatePreview  -
//	magnetic    AddPoint      UpdatePreview  -
//
// A completed trace is drawn as a filled path tagged with its region id, the
// resulting selection.Region is returned to the caller, and the new canvas
// state is recorded in the history. Preview changes never record.
//
// An Editor is not safe for concurrent use; callers serialise events.
package editor
