package collector

import (
	"fmt"

	"utester/internal/testmgr"
	"utester/pkg/utester/core"
)

func CollectTesters(s core.Suite) ([]testmgr.Tester, error) {
	collector := testerCollector{
		testers: make([]testmgr.Tester, 0),
	}

	// Run the registration function to collect the testers.
	err := s.RegisterTesters(&collector)
	if err != nil {
		return nil, fmt.Errorf("failed to register testers: %w", err)
	}

	for _, tester := range collector.testers {
		if err := testmgr.ValidateTester(tester.Name, tester.F); err != nil {
			return nil, err
		}
	}

	return collector.testers, nil
}

type testerCollector struct {
	testers []testmgr.Tester
}

// RegisterTester implements core.TestRegistrar.
func (c *testerCollector) RegisterTester(name string, f core.TesterFunc) {
	c.testers = append(c.testers, testmgr.Tester{
		Name: name,
		F:    f,
	})
}
