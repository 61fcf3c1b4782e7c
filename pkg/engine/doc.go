// Package engine runs a render pass: it walks a parsed card, dispatches every
// element to the renderer registered for its type, and collects the view
// tree, the (element, handler) bindings of every rendered input, and the
// ordered warnings raised along the way.
//
// A pass is single-threaded. The Engine and its Registry are shared, each
// RenderedCard belongs to exactly one pass.
package engine
