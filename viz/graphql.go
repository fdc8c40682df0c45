package viz

import (
	"github.com/graphql-go/graphql"
)

// InitGraphql builds the query/mutation schema over the visualizer's
// parameters. Queries read the clamped values; the mutation routes each
// argument through the matching setter.
func (v *Visualizer) InitGraphql() error {
	paramFields := graphql.Fields{
		"thresholdValue": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(graphql.ResolveParams) (interface{}, error) {
				return v.Parameters().ThresholdDb, nil
			},
		},
		"decayRate": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(graphql.ResolveParams) (interface{}, error) {
				return v.Parameters().DecayRate, nil
			},
		},
		"averagerIntervals": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(graphql.ResolveParams) (interface{}, error) {
				return v.Parameters().AveragerIntervals, nil
			},
		},
		"peakHoldEnabled": &graphql.Field{
			Type: graphql.Boolean,
			Resolve: func(graphql.ResolveParams) (interface{}, error) {
				return v.Parameters().PeakHoldEnabled, nil
			},
		},
		"peakHoldInf": &graphql.Field{
			Type: graphql.Boolean,
			Resolve: func(graphql.ResolveParams) (interface{}, error) {
				return v.Parameters().PeakHoldInf, nil
			},
		},
		"peakHoldDuration": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(graphql.ResolveParams) (interface{}, error) {
				return v.Parameters().PeakHoldDurationMs, nil
			},
		},
		"goniometerScale": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(graphql.ResolveParams) (interface{}, error) {
				return v.Parameters().GoniometerScale, nil
			},
		},
	}

	paramType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "ParamType",
		Fields: paramFields,
	})

	paramMut := &graphql.Field{
		Type: paramType,
		Args: graphql.FieldConfigArgument{
			"thresholdValue":    &graphql.ArgumentConfig{Type: graphql.Float},
			"decayRate":         &graphql.ArgumentConfig{Type: graphql.Float},
			"averagerIntervals": &graphql.ArgumentConfig{Type: graphql.Int},
			"peakHoldEnabled":   &graphql.ArgumentConfig{Type: graphql.Boolean},
			"peakHoldInf":       &graphql.ArgumentConfig{Type: graphql.Boolean},
			"peakHoldDuration":  &graphql.ArgumentConfig{Type: graphql.Int},
			"goniometerScale":   &graphql.ArgumentConfig{Type: graphql.Float},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if arg, ok := p.Args["thresholdValue"].(float64); ok {
				v.SetThreshold(arg)
			}
			if arg, ok := p.Args["decayRate"].(float64); ok {
				v.SetDecayRate(arg)
			}
			if arg, ok := p.Args["averagerIntervals"].(int); ok {
				v.SetAveragerIntervals(arg)
			}
			if arg, ok := p.Args["peakHoldEnabled"].(bool); ok {
				v.SetPeakHoldEnabled(arg)
			}
			if arg, ok := p.Args["peakHoldInf"].(bool); ok {
				v.SetPeakHoldForever(arg)
			}
			if arg, ok := p.Args["peakHoldDuration"].(int); ok {
				v.SetPeakHoldDuration(arg)
			}
			if arg, ok := p.Args["goniometerScale"].(float64); ok {
				v.SetGoniometerScale(arg)
			}
			return struct{}{}, nil
		},
	}

	resetMut := &graphql.Field{
		Type: graphql.Boolean,
		Resolve: func(graphql.ResolveParams) (interface{}, error) {
			v.ResetHolds()
			v.ClearHistogram()
			return true, nil
		},
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"params": &graphql.Field{
				Type: paramType,
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return struct{}{}, nil
				},
			},
		},
	})
	rootMut := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMut",
		Fields: graphql.Fields{
			"params":     paramMut,
			"resetHolds": resetMut,
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    rootQuery,
		Mutation: rootMut,
	})
	if err != nil {
		return err
	}
	v.schema = schema
	return nil
}

// Query runs a graphql query against the parameter schema.
func (v *Visualizer) Query(query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         v.schema,
		RequestString:  query,
		VariableValues: vars,
	})
}
