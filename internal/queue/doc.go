/*
Package queue turns the rows of the request sheet into the DJ's request queue.

A run fetches the whole worksheet from a Source, normalizes it against the
column alias table, classifies every request against the day's cutoff and
finally filters and sorts it for display:

	p := queue.NewPipeline(source, settings, queue.WithLogger(logger))
	board, err := p.Run(ctx, queue.Options{OnlyUnplayed: true, Sort: queue.SortNewest})

Two conditions stop a run before anything is shown: a missing required
column (*SchemaError) and an unreachable source (ErrSourceUnavailable).
A timestamp that does not parse only affects its own row, which is then an
On-Demand request.

Nothing is kept between runs.
*/
package queue
