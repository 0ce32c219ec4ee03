/*
Package cron is an in-process, match-based cron scheduler. Jobs are bound to a
seven-field cron expression (second, minute, hour, day, month, weekday, year) and a
background executor wakes once per period, evaluating every registered job against
the current wall-clock time. Matching is a pure predicate over the clock rather
than a next-run computation, so expressions support an explicit year field and
English month/weekday phrases ("jan", "Monday") anywhere an integer is expected.
*/
package cron
