// Package drill implements the verb drill engine: building practice
// sessions, validating and classifying learner answers, and updating
// per-item mastery through the spaced repetition scheduler.
package drill
