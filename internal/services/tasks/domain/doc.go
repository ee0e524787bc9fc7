// Package domain defines the task management entities and the pure rules
// that operate on them: projects, tasks, comments, history entries, partial
// update patches, and field-level change sets.
package domain
