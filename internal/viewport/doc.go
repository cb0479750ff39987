// Package viewport arranges views in a binary tree of splits.
//
// Leaves hold a view, inner nodes an orientation and two children.
// Exactly one leaf is active. Splitting a pane clones its view so both
// panes show the same buffer with independent cursors and scrolling;
// closing a pane gives its space to the sibling and releases the buffer
// once no pane shows it.
package viewport
