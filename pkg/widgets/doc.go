// Package widgets provides the building blocks the carousel kit composes
// its screens from: layout containers (Row, Column, Padding, SizedBox,
// Center), painted boxes (ColorBox), tap and drag handling
// (GestureDetector), the scroll machinery behind the card strip
// (ScrollController, ScrollPosition, the physics types), and
// PlatformViewHost for embedding native controls such as the page
// indicator.
//
// Widgets are plain structs built with literals:
//
//	card := widgets.ColorBox{
//	    Color:  graphics.RGB(60, 120, 255),
//	    Width:  310,
//	    Height: 403,
//	}
//
// # Scrolling
//
// There is no general-purpose scroll widget here. The carousel's strip owns
// its render object and drives a [ScrollPosition] directly; this package
// supplies the position, the controller shared with the embedding
// application, and the physics. [PagingScrollPhysics] is the one carousels
// care about: it resolves every release to a card boundary.
package widgets
