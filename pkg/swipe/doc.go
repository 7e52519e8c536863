// Package swipe implements the interaction engine behind a swipeable card
// stack: a finite pile of items where the user drags the top item, the release
// is classified as a left or right swipe, the item animates off-screen, a
// direction callback fires and the next item is promoted.
//
// # Components
//
//   - [GestureTracker] turns cumulative pointer displacement into a live
//     [DragState] and, on release, a [Decision] (commit right, commit left or
//     cancel) using a threshold of a quarter of the screen width.
//
//   - [Controller] owns the [Deck], the cursor of the first visible item, the
//     live drag offset and the single active [Animation]. It produces per-layer
//     geometry ([Layer]) for a rendering layer and calls back into caller
//     supplied render functions ([Renderer]) and swipe callbacks.
//
// # Driving the controller
//
// The controller never starts goroutines. A host event loop feeds it pointer
// input through the topmost layer's [GestureHandle] and calls
// [Controller.Tick] once per frame while [Controller.Animating] reports true:
//
//	c := swipe.NewController(swipe.Options[Card]{
//	    ScreenWidth:  400,
//	    OnSwipeRight: func(d swipe.Deck[Card]) { like(d.Items[d.VisibleFrom]) },
//	})
//	c.Reset(cards)
//
//	top, _ := c.Layer(0)
//	top.Handle.Start()
//	top.Handle.Move(150, 12)
//	top.Handle.Release(150, 12) // CommitRight, exit animation scheduled
//
//	for c.Tick(time.Now()) {
//	    // wait for the next frame
//	}
//
// Every animation carries a generation tag. Starting a new animation, or
// resetting the deck, supersedes the previous one and its completion becomes
// a no-op, so the cursor can never advance twice for one swipe.
//
// The controller is not safe for concurrent use; the host serialises input,
// frames and resets.
package swipe
