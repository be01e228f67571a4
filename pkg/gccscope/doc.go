// Package gccscope reconstructs the internal decision timeline of a WebRTC
// GCC bandwidth-estimation run from its textual logs: four competing
// estimators (delay-based trendline, RTT backoff, loss-based, probe-based)
// plus the constraint-clamping pipeline that bounds the final target rate.
//
// Quick start:
//
//	a := gccscope.New()
//	rep, err := a.AnalyzeFile("sender_cloud.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, p := range rep.Timeline {
//	    fmt.Println(p.TimestampMs, p.Reason, p.Rank)
//	}
//	rep.WriteText(os.Stdout)
//
// The Analyzer holds no per-run state and is safe to run concurrently on
// independent inputs. Lines that match no known grammar are skipped
// silently; that is the common case, not a failure.
package gccscope
