package rope_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRope(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rope Suite")
}
