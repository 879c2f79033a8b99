// Package fselect evaluates feature subsets for unsupervised feature
// selection.
//
// A subset is given as a roaring bitmap of feature indexes. Evaluating it
// projects the data onto the selected features, clusters the projection with
// LBG or ELBG, and scores the partition with two cluster-validity indices:
// one for separation and one for compactness. Scores can be normalized by the
// number of selected features so that subsets of different sizes compare.
//
// # Usage
//
//	cfg := fselect.DefaultConfig()
//	cfg.NumClusters = 3
//
//	ev, err := fselect.New(data, cfg)
//	if err != nil {
//		return err
//	}
//
//	masks := []*roaring.Bitmap{roaring.BitmapOf(0), roaring.BitmapOf(0, 2)}
//	objs, err := ev.EvaluateAll(ctx, masks)
//	if err != nil {
//		return err
//	}
//	front := ev.ParetoFront(objs)
//
// # Reproducibility
//
// Every evaluation uses its own engine and its own explicitly seeded source.
// EvaluateAll seeds mask i with Config.Seed+i, so batch results do not depend
// on scheduling.
package fselect
