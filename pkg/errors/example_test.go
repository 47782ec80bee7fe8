package errors_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/podoc/pkg/errors"
)

func ExampleWrap() {
	err := errors.Wrap(errors.ErrCodeFileNotFound, os.ErrNotExist, "document %s", "po.yaml")

	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.UserMessage(err))
	fmt.Println(errors.Fatal(errors.GetCode(err)))
	// Output:
	// FILE_NOT_FOUND
	// document po.yaml
	// true
}

func ExampleFatal() {
	fmt.Println(errors.Fatal(errors.ErrCodeEnrichmentFailed))
	fmt.Println(errors.Fatal(errors.ErrCodeRenderFault))
	// Output:
	// false
	// true
}
