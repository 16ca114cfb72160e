package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffgrady/practicalmachinelearning/pkg/config"
)

// syntheticCSVs builds a small but realistic pair of files: seven leading
// metadata columns, one dense measurement separating three grades, one
// mostly-missing measurement, and the grade column last.
func syntheticCSVs() (training, holdout string) {
	var tb strings.Builder
	tb.WriteString("row_id,user_name,raw_ts_1,raw_ts_2,cvtd_ts,new_window,num_window,roll_belt,kurtosis_roll,classe\n")
	grades := []string{"A", "B", "C"}
	row := 0
	for g, base := range []float64{0, 20, 40} {
		for i := 0; i < 10; i++ {
			row++
			sparse := "NA"
			if i == 0 {
				sparse = "0.5"
			}
			fmt.Fprintf(&tb, "%d,pedro,%d,%d,05/12/2011,no,%d,%.1f,%s,%s\n",
				row, 1000+row, 2000+row, row/5, base+float64(i), sparse, grades[g])
		}
	}

	var hb strings.Builder
	hb.WriteString("row_id,user_name,raw_ts_1,raw_ts_2,cvtd_ts,new_window,num_window,roll_belt,kurtosis_roll,problem_id\n")
	for i, v := range []float64{4, 25, 44} {
		fmt.Fprintf(&hb, "%d,pedro,1,2,05/12/2011,no,1,%.1f,NA,%d\n", i+1, v, i+1)
	}
	return tb.String(), hb.String()
}

func TestRunPipelineEndToEnd(t *testing.T) {
	training, holdout := syntheticCSVs()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "training") {
			w.Write([]byte(training))
			return
		}
		w.Write([]byte(holdout))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Data.TrainingURL = srv.URL + "/training.csv"
	cfg.Data.HoldoutURL = srv.URL + "/testing.csv"
	cfg.Data.CacheDir = t.TempDir()
	cfg.Prune.LeadingColumns = 7
	cfg.Prune.MissingThreshold = 0.8
	cfg.Train.Folds = 3
	cfg.Train.Workers = 3
	cfg.Train.Seed = 1

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &out))

	got := out.String()
	assert.Contains(t, got, "random-forest")
	assert.Contains(t, got, "boosting")
	assert.Contains(t, got, "lda")

	// The three held-out rows sit deep inside each grade's band; every
	// model should agree, so the vote is unanimous.
	assert.Contains(t, got, "row 1: A")
	assert.Contains(t, got, "row 2: B")
	assert.Contains(t, got, "row 3: C")
}
