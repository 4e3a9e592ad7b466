package writers

import (
	"fmt"
	"io"

	"seqio/internal/jsonlutil"
	"seqio/internal/jsonutil"
	"seqio/pkg/api"
)

func init() {
	RegisterValidation("text", writeValidationText)
	RegisterValidation("json", jsonutil.EncodeList[api.ValidationV1])
	RegisterValidation("jsonl", jsonlutil.Write[api.ValidationV1])
}

func writeValidationText(w io.Writer, rows []api.ValidationV1) error {
	for _, r := range rows {
		var err error
		if r.Valid {
			_, err = fmt.Fprintf(w, "OK\t%s\t%d records\n", r.File, r.Records)
		} else {
			_, err = fmt.Fprintf(w, "FAIL\t%s\t%s\n", r.File, r.Error)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
