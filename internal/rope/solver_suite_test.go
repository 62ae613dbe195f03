package rope

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSolvers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rope Solver Suite")
}
