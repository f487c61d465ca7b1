/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/mihai-snyk/moea/pkg/algorithms"
	"github.com/mihai-snyk/moea/pkg/framework"
)

// ValidateRunSpec validates a defaulted RunSpec. The returned error wraps
// framework.ErrInvalidConfig and lists every offending field.
func ValidateRunSpec(obj *RunSpec) error {
	errs := validateRunSpec(obj, field.NewPath("spec"))
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", framework.ErrInvalidConfig, errs.ToAggregate())
}

func validateRunSpec(obj *RunSpec, fldPath *field.Path) field.ErrorList {
	var errs field.ErrorList

	if obj.Problem == "" {
		errs = append(errs, field.Required(fldPath.Child("problem"), ""))
	}
	if obj.Crossover != nil {
		switch obj.Crossover.Type {
		case CrossoverSBX, CrossoverDE:
			errs = append(errs, validateProbability(obj.Crossover.Probability, fldPath.Child("crossover", "probability"))...)
			errs = append(errs, validateProbability(obj.Crossover.CR, fldPath.Child("crossover", "cr"))...)
		default:
			errs = append(errs, field.NotSupported(fldPath.Child("crossover", "type"), obj.Crossover.Type, []string{CrossoverSBX, CrossoverDE}))
		}
	}
	if obj.Mutation != nil {
		errs = append(errs, validateProbability(obj.Mutation.Probability, fldPath.Child("mutation", "probability"))...)
	}
	switch obj.Selection {
	case "", SelectionTournament:
	case SelectionRandom:
		if algorithms.Kind(obj.Algorithm) == algorithms.MOEADKind {
			errs = append(errs, field.Forbidden(fldPath.Child("selection"), "MOEA/D mates inside the neighborhood"))
		}
	default:
		errs = append(errs, field.NotSupported(fldPath.Child("selection"), obj.Selection, []string{SelectionTournament, SelectionRandom}))
	}
	if obj.Deadline != nil && obj.Deadline.Duration < 0 {
		errs = append(errs, field.Invalid(fldPath.Child("deadline"), obj.Deadline.Duration.String(), "must not be negative"))
	}
	if len(errs) > 0 {
		return errs
	}

	// The driver settings are checked by the drivers' own rules so that
	// both entry points agree. The variable count does not affect them.
	cfg, err := obj.ToConfig(1)
	if err != nil {
		return append(errs, field.InternalError(fldPath, err))
	}
	return cfg.Validate(algorithms.Kind(obj.Algorithm), fldPath)
}

func validateProbability(p *float64, fldPath *field.Path) field.ErrorList {
	if p != nil && (*p < 0 || *p > 1) {
		return field.ErrorList{field.Invalid(fldPath, *p, "must be in [0, 1]")}
	}
	return nil
}
