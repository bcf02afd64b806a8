package cli

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe/confession"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/countercell"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/eligibility"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/matching"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a circuit end to end with local parties",
}

func init() {
	match := &cobra.Command{
		Use:   "match",
		Short: "Score two preference profiles",
		Args:  cobra.NoArgs,
		RunE:  runDemoMatch,
	}
	match.Flags().Bool("coarse", false, "Use the coarse policy instead of the detailed one")
	match.Flags().UintSlice("a-interests", []uint{1, 2}, "Party A interest slots (up to 10)")
	match.Flags().UintSlice("b-interests", []uint{1, 2}, "Party B interest slots (up to 10)")
	match.Flags().Uint8("a-age", 25, "Party A age")
	match.Flags().Uint8("b-age", 27, "Party B age")

	elig := &cobra.Command{
		Use:   "eligibility",
		Short: "Check a member against a threshold for a verifier",
		Args:  cobra.NoArgs,
		RunE:  runDemoEligibility,
	}
	elig.Flags().Bool("reputation", false, "Compare reputation instead of tier")
	elig.Flags().Uint8("value", 3, "Member tier or reputation")
	elig.Flags().Uint8("threshold", 2, "Required minimum")
	elig.Flags().Bool("inactive", false, "Mark the member inactive")

	confess := &cobra.Command{
		Use:   "confess [text...]",
		Short: "Submit confessions and print their identifiers",
		RunE:  runDemoConfess,
	}
	confess.Flags().Bool("stateless", false, "Use the caller timestamp as identifier")
	confess.Flags().Uint64("timestamp", 1_700_000_000, "Timestamp for stateless submissions")
	confess.Flags().IntP("count", "n", 1, "Number of submissions")

	demoCmd.AddCommand(match, elig, confess)
	RootCmd.AddCommand(demoCmd)
}

func runDemoMatch(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	ctx := cmd.Context()

	coarse, _ := cmd.Flags().GetBool("coarse")
	aInterests, _ := cmd.Flags().GetUintSlice("a-interests")
	bInterests, _ := cmd.Flags().GetUintSlice("b-interests")
	aAge, _ := cmd.Flags().GetUint8("a-age")
	bAge, _ := cmd.Flags().GetUint8("b-age")

	alice, err := gateway.NewClient(e.gw.ClusterRef())
	if err != nil {
		return err
	}
	defer alice.Close()
	bob, err := gateway.NewClient(e.gw.ClusterRef())
	if err != nil {
		return err
	}
	defer bob.Close()

	a := matching.PreferenceProfile{UserID: 1, Category: 1, Age: aAge, AgeMin: 20, AgeMax: 30, Intent: 1}
	if err := fillInterests(&a, aInterests); err != nil {
		return err
	}
	b := matching.PreferenceProfile{UserID: 2, Category: 1, Age: bAge, AgeMin: 22, AgeMax: 28, Intent: 1}
	if err := fillInterests(&b, bInterests); err != nil {
		return err
	}

	ctA, err := gateway.Seal(alice, a)
	if err != nil {
		return err
	}
	ctB, err := gateway.Seal(bob, b)
	if err != nil {
		return err
	}

	eng := matching.New(e.gw, matching.WithLogger(e.logger))
	req := &matching.Request{
		ProfileA: ctA, KeyA: alice.Ref(), ToA: alice.Ref(),
		ProfileB: ctB, KeyB: bob.Ref(), ToB: bob.Ref(),
	}
	var resp *matching.Response
	if coarse {
		resp, err = eng.CheckCoarseMatch(ctx, req)
	} else {
		resp, err = eng.CheckMatch(ctx, req)
	}
	if err != nil {
		return err
	}

	forA, err := gateway.Open(alice, resp.ForA)
	if err != nil {
		return err
	}
	forB, err := gateway.Open(bob, resp.ForB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "A sees: match=%t score=%d peer=%d\n", forA.Match, forA.Score, forA.PeerID)
	fmt.Fprintf(out, "B sees: match=%t score=%d peer=%d\n", forB.Match, forB.Score, forB.PeerID)
	return nil
}

func fillInterests(p *matching.PreferenceProfile, vals []uint) error {
	if len(vals) > matching.InterestSlots {
		return fmt.Errorf("at most %d interests, got %d", matching.InterestSlots, len(vals))
	}
	for i, v := range vals {
		if v > 255 {
			return fmt.Errorf("interest %d out of range", v)
		}
		p.Interests[i] = uint8(v)
	}
	return nil
}

func runDemoEligibility(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	ctx := cmd.Context()

	useRep, _ := cmd.Flags().GetBool("reputation")
	value, _ := cmd.Flags().GetUint8("value")
	threshold, _ := cmd.Flags().GetUint8("threshold")
	inactive, _ := cmd.Flags().GetBool("inactive")

	member, err := gateway.NewClient(e.gw.ClusterRef())
	if err != nil {
		return err
	}
	defer member.Close()
	verifier, err := gateway.NewClient(e.gw.ClusterRef())
	if err != nil {
		return err
	}
	defer verifier.Close()

	profile := eligibility.MemberProfile{MemberID: 7, Tier: value, Reputation: value, Active: !inactive}
	ctProfile, err := gateway.Seal(member, profile)
	if err != nil {
		return err
	}
	// The verifier supplies the threshold here.
	ctThreshold, err := gateway.Seal(verifier, gateway.U8(threshold))
	if err != nil {
		return err
	}

	eng := eligibility.New(e.gw, eligibility.WithLogger(e.logger))
	req := &eligibility.Request{
		Member: ctProfile, MemberKey: member.Ref(),
		Threshold: ctThreshold, ThresholdKey: verifier.Ref(),
		Verifier: verifier.Ref(),
	}
	check, field := eng.VerifyTier, "tier"
	if useRep {
		check, field = eng.VerifyReputation, "reputation"
	}
	ct, err := check(ctx, req)
	if err != nil {
		return err
	}

	ok, err := gateway.Open(verifier, ct)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "verifier sees: %s eligible=%t\n", field, bool(ok))
	return nil
}

func runDemoConfess(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	ctx := cmd.Context()

	stateless, _ := cmd.Flags().GetBool("stateless")
	ts, _ := cmd.Flags().GetUint64("timestamp")
	count, _ := cmd.Flags().GetInt("count")

	text := "demo confession"
	if len(args) > 0 {
		text = strings.Join(args, " ")
	}

	author, err := gateway.NewClient(e.gw.ClusterRef())
	if err != nil {
		return err
	}
	defer author.Close()

	eng := confession.New(e.gw, confession.WithLogger(e.logger))

	var cell *countercell.Cell
	if !stateless {
		store, err := countercell.Open(e.cfg.Counter)
		if err != nil {
			return err
		}
		defer store.Close()
		cell, err = countercell.New(store, eng)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for i := 0; i < count; i++ {
		in, err := gateway.Seal(author, confession.Submission{
			ContentDigest: sha256.Sum256([]byte(text)),
			Category:      1,
			Timestamp:     ts + uint64(i),
		})
		if err != nil {
			return err
		}

		var ct gateway.Ciphertext[confession.Receipt]
		if stateless {
			ct, err = eng.Submit(ctx, in, author.Ref())
		} else {
			ct, err = cell.Submit(ctx, in, author.Ref())
		}
		if err != nil {
			return err
		}

		r, err := gateway.Open(author, ct)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "confession id=%d success=%t\n", r.ID, r.Success)
	}
	return nil
}
