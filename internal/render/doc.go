// Package render paints a pane tree onto a tcell screen.
//
// The painter reads only what views and the tree expose: the layout
// rectangles, each view's Frame and the active pane. Selections are
// drawn reversed, search matches underlined, secondary cursors as
// reversed cells and the primary cursor of the active pane as the
// terminal cursor. With a chroma style in the theme, lines are coloured
// by the highlight package.
package render
