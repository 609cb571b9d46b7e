// Package cleanup finds series referenced by exactly one game and removes them.
//
// FindSingleGameSeries and BuildPreview are pure. Service wires them to a
// library store, a user interface for the preview and the yes/no prompt, a
// notifier, and a logger; Service.Run drives one invocation from scan to
// report and always returns an Outcome instead of panicking or exiting.
//
// Removal re-reads each game inside the batch because the store may have been
// edited between the scan and the confirmation. Every candidate is applied in
// its own isolated step, so one failing candidate does not block the others;
// the failures come back joined in a single error.
package cleanup
