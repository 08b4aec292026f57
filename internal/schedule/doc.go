// Package schedule provides cancellable one-shot and repeating tasks for a
// single-threaded, cooperative event loop.
//
// Every callback runs on the loop thread: [Realtime] posts timer fires
// through a caller-supplied dispatcher, [Virtual] runs them inside
// [Virtual.Advance]. Cancelling a [Handle] is synchronous: once Cancel
// returns on the loop thread, the callback will not run again, even if a
// fire was already queued.
package schedule
